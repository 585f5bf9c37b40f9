package talks

import "strings"

const defaultSpeakerLabel = "Palestrante"

// Ordered keyword → canonical title table. Order is load-bearing: the more
// specific phrases ("professor doutor") must be tried before the generic
// ones ("professor"), so this stays a slice, never a map.
var professionTitles = []struct {
	keyword string
	title   string
}{
	{"professor doutor", "Professor Doutor"},
	{"professora doutora", "Professora Doutora"},
	{"professor adjunto", "Professor Adjunto"},
	{"professora adjunta", "Professora Adjunta"},
	{"professor", "Professor"},
	{"professora", "Professora"},
	{"fisioterapeuta", "Fisioterapeuta"},
	{"enfermeira", "Enfermeira"},
	{"enfermeiro", "Enfermeiro"},
	{"fonoaudióloga", "Fonoaudióloga"},
	{"fonoaudiólogo", "Fonoaudiólogo"},
	{"psicóloga", "Psicóloga"},
	{"psicólogo", "Psicólogo"},
	{"terapeuta ocupacional", "Terapeuta Ocupacional"},
	{"nutricionista", "Nutricionista"},
	{"advogada", "Advogada"},
	{"advogado", "Advogado"},
	{"coordenadora", "Coordenadora"},
	{"coordenador", "Coordenador"},
	{"diretor técnico", "Diretor Técnico"},
	{"diretora técnica", "Diretora Técnica"},
}

// InferSpeakerName builds a display name for a talk whose structured
// speaker field is blank, from the free-text speaker resume and the
// affiliation. First profession keyword found in the resume wins.
func InferSpeakerName(resumeSpeaker, affiliation string) string {
	if resumeSpeaker == "" {
		if affiliation == "" {
			return defaultSpeakerLabel
		}
		return truncate(affiliation, 100)
	}

	resumeLower := strings.ToLower(resumeSpeaker)

	for _, p := range professionTitles {
		if strings.Contains(resumeLower, p.keyword) {
			if affiliation != "" && affiliation != defaultSpeakerLabel {
				return p.title + " - " + truncate(affiliation, 60)
			}
			return p.title
		}
	}

	if affiliation != "" {
		return truncate(affiliation, 100)
	}
	return defaultSpeakerLabel
}

// truncate limits s to max characters, ellipsis included. Counted in runes
// so accented affiliations do not get cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
