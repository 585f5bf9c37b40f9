package contact_test

import (
	"net/http"
	"testing"

	"amparo-backend/database"
	"amparo-backend/internal/domain/access"
	"amparo-backend/internal/domain/users"
	"amparo-backend/internal/testutil"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
)

func TestRegisterValidation(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/contact", gin.H{
		"nome": "Ana",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)

	w = testutil.DoJSON(t, r, http.MethodPost, "/contact", gin.H{
		"nome": "Ana", "telefone": "111", "email": "not-an-email",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)

	// researcher variant requires the institutional fields too
	w = testutil.DoJSON(t, r, http.MethodPost, "/contact/researcher", gin.H{
		"nome": "Ana", "telefone": "111", "email": "ana@x.com",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)

	var count int64
	database.DB.Model(&users.User{}).Count(&count)
	c.Assert(count, qt.Equals, int64(0))
}

func TestRegisterCreatesNonAuthenticatablePendingAccount(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/contact", gin.H{
		"nome": "Ana", "telefone": "111", "email": "ana@x.com",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	var u users.User
	c.Assert(database.DB.Where("email = ?", "ana@x.com").First(&u).Error, qt.IsNil)
	c.Assert(u.Role, qt.Equals, access.RolePending)
	c.Assert(u.Username, qt.Equals, "ana")
	c.Assert(u.Password, qt.Not(qt.Equals), "")

	// nobody knows the generated password; even a lucky guess at the role
	// gate would be stopped, but the credential itself is unusable
	w = testutil.DoJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "ana", "password": "anything",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/contact", gin.H{
		"nome": "Ana", "telefone": "111", "email": "ana@x.com",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	// same email, different other fields: still rejected, generic message
	w = testutil.DoJSON(t, r, http.MethodPost, "/contact", gin.H{
		"nome": "Outra Ana", "telefone": "222", "email": "ana@x.com",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	var body struct {
		Error string `json:"error"`
	}
	testutil.Decode(t, w, &body)
	c.Assert(body.Error, qt.Equals, "Email already registered")

	// uniqueness spans both registration variants
	w = testutil.DoJSON(t, r, http.MethodPost, "/contact/researcher", gin.H{
		"nome": "Ana", "telefone": "111", "email": "ana@x.com",
		"instituicao": "UFRJ", "area_pesquisa": "Saúde", "tipo_vinculo": "mestrado",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)

	var count int64
	database.DB.Model(&users.User{}).Where("email = ?", "ana@x.com").Count(&count)
	c.Assert(count, qt.Equals, int64(1))
}

func TestRegisterResearcher(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/contact/researcher", gin.H{
		"nome": "Rui", "telefone": "333", "email": "rui@uni.br",
		"instituicao": "UFMG", "area_pesquisa": "Fonoaudiologia",
		"lattes": "1234", "tipo_vinculo": "doutorado",
	}, "")
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	var u users.User
	c.Assert(database.DB.Where("email = ?", "rui@uni.br").First(&u).Error, qt.IsNil)
	c.Assert(u.UserType, qt.Equals, "pesquisador")
	c.Assert(u.Instituicao, qt.Equals, "UFMG")
	c.Assert(u.TipoVinculo, qt.Equals, "doutorado")
	c.Assert(u.Role, qt.Equals, access.RolePending)
}
