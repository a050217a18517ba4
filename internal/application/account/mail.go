package account

import (
	"bytes"
	"fmt"
	"html/template"
)

const codeSubject = "Your verification code"

var codeHTML = template.Must(template.New("code").Parse(`<p>Hello, {{.Name}}!</p>
<p>Your verification code to activate your account:</p>
<h3 style="font-size:24px;text-align:center;padding:10px;">{{.Code}}</h3>
<p>The code is valid for one hour. Do not share it with anyone.</p>
`))

// codeMessage renders the plain text and HTML bodies carrying code.
func codeMessage(name, code string) (text, html string, err error) {
	text = fmt.Sprintf("Your verification code: %s\nThe code is valid for one hour.", code)
	var buf bytes.Buffer
	if err := codeHTML.Execute(&buf, struct{ Name, Code string }{name, code}); err != nil {
		return "", "", fmt.Errorf("render code email: %w", err)
	}
	return text, buf.String(), nil
}
