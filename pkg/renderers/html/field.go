package html

import (
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/style"
)

func (r *Renderer) fieldMarkup(field form.FieldView) (string, error) {
	control, err := r.control(field)
	if err != nil {
		return "", err
	}
	if field.Bare {
		return control, nil
	}

	var buf strings.Builder
	buf.WriteString("<div")
	writeAttr(&buf, "class", style.Join(string(ClassField), field.WrapperClasses))
	writeAttr(&buf, "data-field", field.Name)
	writeAttr(&buf, "data-status", string(field.Status))
	if field.VisibleWhen != "" {
		writeAttr(&buf, "data-visible-when", field.VisibleWhen)
	}
	if field.Hidden {
		buf.WriteString(" hidden")
	}
	buf.WriteString(">")

	switch field.LabelPosition {
	case form.LabelFloating:
		buf.WriteString(control)
		writeLabel(&buf, field, "pointer-events-none absolute left-3 top-2 text-xs")
	case form.LabelLeft:
		writeLabel(&buf, field, "pt-2")
		buf.WriteString(`<div class="flex flex-col gap-1">`)
		buf.WriteString(control)
		writeMessages(&buf, field)
		buf.WriteString("</div></div>")
		return buf.String(), nil
	default:
		writeLabel(&buf, field, "")
		buf.WriteString(control)
	}
	writeMessages(&buf, field)
	buf.WriteString("</div>")
	return buf.String(), nil
}

func writeLabel(buf *strings.Builder, field form.FieldView, extra string) {
	if field.Label == "" {
		return
	}
	classes := style.Join(string(ClassLabel), field.LabelClasses, extra)
	if !field.ShowLabel {
		classes = "sr-only"
	}
	buf.WriteString("<label")
	writeAttr(buf, "for", field.ID)
	writeAttr(buf, "class", classes)
	buf.WriteString(">")
	buf.WriteString(html.EscapeString(field.Label))
	if field.RequiredMarker != "" {
		buf.WriteString(` <span class="text-red-600" aria-hidden="true">`)
		buf.WriteString(html.EscapeString(field.RequiredMarker))
		buf.WriteString("</span>")
	}
	buf.WriteString("</label>")
}

func writeMessages(buf *strings.Builder, field form.FieldView) {
	if field.Helper != "" {
		buf.WriteString("<p")
		writeAttr(buf, "id", field.ID+"-helper")
		writeAttr(buf, "class", style.Join(string(ClassHelper), field.HelperClasses))
		buf.WriteString(">")
		buf.WriteString(html.EscapeString(field.Helper))
		buf.WriteString("</p>")
	}
	if field.Message == "" {
		return
	}
	buf.WriteString("<p")
	writeAttr(buf, "id", field.ID+"-message")
	writeAttr(buf, "class", style.Join(string(ClassMessage), field.MessageClasses))
	if field.Status == style.StatusError {
		buf.WriteString(` role="alert"`)
	}
	buf.WriteString(">")
	buf.WriteString(html.EscapeString(field.Message))
	buf.WriteString("</p>")
}

func buttonMarkup(button form.ButtonView) string {
	var buf strings.Builder
	buf.WriteString("<button")
	writeAttr(&buf, "type", button.Type)
	writeAttr(&buf, "name", button.Name)
	writeAttr(&buf, "value", button.Value)
	writeAttr(&buf, "class", button.Classes)
	writeBool(&buf, "disabled", button.Disabled)
	if button.Loading {
		buf.WriteString(` aria-busy="true"`)
	}
	buf.WriteString(">")
	if button.Loading {
		buf.WriteString(`<span class="h-4 w-4 animate-spin rounded-full border-2 border-current border-t-transparent" aria-hidden="true"></span>`)
	}
	if button.Icon != "" && !button.IconRight && !button.Loading {
		buf.WriteString(button.Icon)
	}
	buf.WriteString("<span>")
	buf.WriteString(html.EscapeString(button.Label))
	buf.WriteString("</span>")
	if button.Icon != "" && button.IconRight && !button.Loading {
		buf.WriteString(button.Icon)
	}
	buf.WriteString("</button>")
	return buf.String()
}
