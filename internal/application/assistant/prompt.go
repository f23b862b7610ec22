package assistant

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/turtacn/ScholarAI/internal/domain/scheme"
)

const systemPromptTemplate = `You are an AI assistant specialized in helping students and parents find and apply for scholarships, grants, and financial aid programs. You have knowledge about eligibility criteria, application processes, required documents, and deadlines. Your goal is to provide personalized guidance based on the user's profile.
{{if .}}
Available scholarship information:
{{range $i, $s := .}}
{{inc $i}}. {{$s.Title}} - Deadline: {{$s.DeadlineLabel}}
   Eligibility: {{join $s.Eligibility}}
   Documents: {{join $s.Documents}}
{{end}}{{else}}
No schemes are currently listed in the catalog.
{{end}}`

var systemPrompt = template.Must(template.New("system").Funcs(template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(systemPromptTemplate))

// BuildSystemPrompt renders the system turn from the live catalog.
func BuildSystemPrompt(schemes []scheme.Scheme) string {
	var buf bytes.Buffer
	if err := systemPrompt.Execute(&buf, schemes); err != nil {
		return strings.TrimSpace(strings.SplitN(systemPromptTemplate, "\n", 2)[0])
	}
	return strings.TrimSpace(buf.String())
}

//Personal.AI order the ending
