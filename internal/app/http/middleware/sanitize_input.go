package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// Rich-text fields keep safe user-generated HTML; every other string field
// is stripped to plain text.
var richTextFields = map[string]bool{
	"body":        true,
	"content":     true,
	"description": true,
	"summary":     true,
}

// SanitizeAndCleanInput cleans all string fields in JSON input using bluemonday.
func SanitizeAndCleanInput() gin.HandlerFunc {
	strict := bluemonday.StrictPolicy()
	ugc := bluemonday.UGCPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		var body map[string]interface{}
		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		for k, v := range body {
			policy := strict
			if richTextFields[k] {
				policy = ugc
			}
			switch val := v.(type) {
			case string:
				body[k] = policy.Sanitize(val)
			case []interface{}:
				for i, item := range val {
					if s, ok := item.(string); ok {
						val[i] = policy.Sanitize(s)
					}
				}
			}
		}

		newBody, _ := json.Marshal(body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}
