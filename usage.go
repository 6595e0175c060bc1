package clidc

import (
	"strings"
	"text/template"
)

var argUsageTemplateString = `
{{- range $i, $a := . }}
{{- if $i }} {{ end }}
{{- if lt .Nargs 0 }}
{{- if .Required }}{{ .Metavar }}...{{ else }}[{{ .Metavar }}]...{{ end }}
{{- else if gt .Nargs 1 }}{{ .Metavar }}...
{{- else if .Required }}{{ .Metavar }}
{{- else }}[{{ .Metavar }}]
{{- end }}
{{- end }}`

var argUsageTemplate = template.Must(
	template.New("args").Parse(argUsageTemplateString),
)

type argUsage struct {
	Metavar  string
	Nargs    int
	Required bool
}

// argsUsage renders the positional part of a usage line, e.g.
// "SRC... DEST [MODE]".
func argsUsage(params []*param) string {
	data := make([]argUsage, 0, len(params))
	for _, p := range params {
		data = append(data, argUsage{
			Metavar:  p.metavar(),
			Nargs:    p.nargs,
			Required: p.required && !p.hasDefault,
		})
	}
	sb := strings.Builder{}
	if err := argUsageTemplate.Execute(&sb, data); err != nil {
		panic(err)
	}
	return sb.String()
}

// withArgsUsage appends the argument usage to use when use is a bare command
// name, leaving hand-written usage lines alone.
func withArgsUsage(use string, params []*param) string {
	if use == "" || strings.ContainsAny(use, " \t") || len(params) == 0 {
		return use
	}
	return use + " " + argsUsage(params)
}
