package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Data defines the fields notification templates may reference.
type Data struct {
	Name     string    `json:"Name"`
	Username string    `json:"Username"`
	Email    string    `json:"Email"`
	AppName  string    `json:"AppName"`
	Code     string    `json:"Code"`
	Time     time.Time `json:"Time"`
}

// ToMap converts Data to a map[string]any for Job.Data
func ToMap(d Data) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

const (
	Welcome   = "welcome"
	LoginCode = "login_code"
)

func exists(filename string) bool {
	_, err := FS.Open(filename)
	return err == nil
}

// renderFile loads and renders a single template file from the embedded FS.
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)

	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Render loads subject, text and html templates for the given base name.
// Expects <name>.text.tmpl; subject and html files are optional.
func Render(name string, data any) (subject string, text string, html string, err error) {
	if exists(name + ".subject.tmpl") {
		if subject, err = renderFile(name+".subject.tmpl", false, data); err != nil {
			return "", "", "", err
		}
	}
	if text, err = renderFile(name+".text.tmpl", false, data); err != nil {
		return "", "", "", err
	}
	if exists(name + ".html.tmpl") {
		if html, err = renderFile(name+".html.tmpl", true, data); err != nil {
			return "", "", "", err
		}
	}
	return subject, text, html, nil
}
