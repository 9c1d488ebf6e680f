package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// Subjects per template name.
var subjects = map[string]string{
	"verification_code": "Verify your email address",
	"welcome":           "Welcome aboard",
	"password_reset":    "Reset your password",
}

// Render renders the named template with data and returns subject, text and html bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	html = buf.String()
	text = textFallback(name, data)
	return subject, text, html, nil
}

func textFallback(name string, data map[string]any) string {
	n, _ := data["Name"].(string)
	code, _ := data["Code"].(string)
	switch name {
	case "verification_code":
		return fmt.Sprintf("Hi %s, your verification code is %s. It expires in 1 hour.", n, code)
	case "password_reset":
		return fmt.Sprintf("Hi %s, your password reset code is %s. It expires in 1 hour.", n, code)
	case "welcome":
		return fmt.Sprintf("Hi %s, your email is verified. Enjoy the movies!", n)
	}
	return ""
}
