package html

import (
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/clock"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/otp"
	"github.com/goliatone/go-formkit/pkg/style"
)

const dateLayout = "2006-01-02"

// writeControl renders the built-in control for the field's input kind.
func (r *Renderer) writeControl(buf *strings.Builder, field form.FieldView) error {
	switch input := field.Input.(type) {
	case form.TextInput:
		writeText(buf, field, input)
	case form.DropdownInput:
		writeDropdown(buf, field, input)
	case form.CheckboxInput:
		writeCheckbox(buf, field, input)
	case form.OTPInput:
		writeOTP(buf, field, input)
	case form.PhoneInput:
		writePhone(buf, field, input)
	case form.DateInput:
		writeDate(buf, field, input, r.now())
	case form.TimeInput:
		writeTime(buf, field, input)
	case form.FileInput:
		writeFile(buf, field, input)
	case form.SearchInput:
		writeSearch(buf, field, input)
	case nil:
		return fmt.Errorf("html: field %q has no input", field.Name)
	default:
		return fmt.Errorf("html: unsupported input %T for field %q", input, field.Name)
	}
	return nil
}

func writeText(buf *strings.Builder, field form.FieldView, input form.TextInput) {
	if input.Multiline {
		buf.WriteString("<textarea")
		writeCommonAttrs(buf, field)
		if input.Rows > 0 {
			writeAttr(buf, "rows", strconv.Itoa(input.Rows))
		}
		writeAttr(buf, "placeholder", input.Placeholder)
		writeLengthAttrs(buf, input.MinLength, input.MaxLength)
		buf.WriteString(">")
		buf.WriteString(html.EscapeString(stringValue(field.Value)))
		buf.WriteString("</textarea>")
		return
	}

	kind := input.Type
	if kind == "" {
		kind = "text"
	}
	buf.WriteString("<input")
	writeAttr(buf, "type", kind)
	writeCommonAttrs(buf, field)
	writeAttr(buf, "value", stringValue(field.Value))
	writeAttr(buf, "placeholder", input.Placeholder)
	writeAttr(buf, "pattern", input.Pattern)
	writeAttr(buf, "autocomplete", input.Autocomplete)
	writeLengthAttrs(buf, input.MinLength, input.MaxLength)
	buf.WriteString(">")
}

func writeDropdown(buf *strings.Builder, field form.FieldView, input form.DropdownInput) {
	selected := stringValues(field.Value)
	buf.WriteString("<select")
	name := field.Name
	if input.Multiple {
		name += "[]"
	}
	writeAttr(buf, "id", field.ID)
	writeAttr(buf, "name", name)
	writeAttr(buf, "class", field.InputClasses)
	writeBool(buf, "multiple", input.Multiple)
	writeBool(buf, "required", field.Required)
	writeBool(buf, "disabled", field.Disabled)
	writeInvalid(buf, field)
	if input.Searchable {
		writeAttr(buf, "data-formkit-searchable", "true")
	}
	buf.WriteString(">")
	if input.Placeholder != "" && !input.Multiple {
		buf.WriteString(`<option value=""`)
		writeBool(buf, "selected", len(selected) == 0)
		buf.WriteString(">")
		buf.WriteString(html.EscapeString(input.Placeholder))
		buf.WriteString("</option>")
	}
	for _, choice := range input.Choices {
		buf.WriteString("<option")
		writeAttr(buf, "value", choice.Value)
		writeBool(buf, "selected", slices.Contains(selected, choice.Value))
		writeBool(buf, "disabled", choice.Disabled)
		buf.WriteString(">")
		buf.WriteString(html.EscapeString(choice.Text()))
		buf.WriteString("</option>")
	}
	buf.WriteString("</select>")
}

func writeCheckbox(buf *strings.Builder, field form.FieldView, input form.CheckboxInput) {
	box := "h-4 w-4 rounded border-gray-300 text-blue-600 focus:ring-blue-500"
	if field.Status == style.StatusError {
		box = style.Join(box, "border-red-500")
	}

	if len(input.Choices) > 0 {
		selected := stringValues(field.Value)
		buf.WriteString(`<div class="flex flex-col gap-2" role="group"`)
		writeAttr(buf, "id", field.ID)
		buf.WriteString(">")
		for idx, choice := range input.Choices {
			id := fmt.Sprintf("%s-%d", field.ID, idx)
			buf.WriteString(`<label class="inline-flex items-center gap-2"`)
			writeAttr(buf, "for", id)
			buf.WriteString(`><input type="checkbox"`)
			writeAttr(buf, "id", id)
			writeAttr(buf, "name", field.Name+"[]")
			writeAttr(buf, "value", choice.Value)
			writeAttr(buf, "class", box)
			writeBool(buf, "checked", slices.Contains(selected, choice.Value))
			writeBool(buf, "disabled", field.Disabled || choice.Disabled)
			buf.WriteString("><span>")
			buf.WriteString(html.EscapeString(choice.Text()))
			buf.WriteString("</span></label>")
		}
		buf.WriteString("</div>")
		return
	}

	checked := boolValue(field.Value)
	if input.Toggle {
		box = "peer sr-only"
	}
	buf.WriteString(`<label class="inline-flex items-center gap-2"`)
	writeAttr(buf, "for", field.ID)
	buf.WriteString(`><input type="hidden"`)
	writeAttr(buf, "name", field.Name)
	buf.WriteString(` value="false"><input type="checkbox"`)
	writeAttr(buf, "id", field.ID)
	writeAttr(buf, "name", field.Name)
	buf.WriteString(` value="true"`)
	writeAttr(buf, "class", box)
	writeBool(buf, "checked", checked)
	writeBool(buf, "required", field.Required)
	writeBool(buf, "disabled", field.Disabled)
	writeInvalid(buf, field)
	if input.Toggle {
		buf.WriteString(` role="switch"`)
		writeAttr(buf, "aria-checked", strconv.FormatBool(checked))
	}
	buf.WriteString(">")
	if input.Toggle {
		buf.WriteString(`<span class="relative h-6 w-11 rounded-full bg-gray-200 transition peer-checked:bg-blue-600 after:absolute after:left-0.5 after:top-0.5 after:h-5 after:w-5 after:rounded-full after:bg-white after:transition peer-checked:after:translate-x-5"></span>`)
	}
	if input.Text != "" {
		buf.WriteString("<span>")
		buf.WriteString(html.EscapeString(input.Text))
		buf.WriteString("</span>")
	}
	buf.WriteString("</label>")
}

func writeOTP(buf *strings.Builder, field form.FieldView, input form.OTPInput) {
	length := input.Length
	if length <= 0 {
		length = otp.DefaultLength
	}
	value := otp.Normalize(stringValue(field.Value), length)
	cellType := "text"
	if input.Masked {
		cellType = "password"
	}
	cellClasses := style.Join(withoutClass(field.InputClasses, "w-full"), "w-12 text-center")

	buf.WriteString(`<div class="flex gap-2" data-formkit-otp`)
	writeAttr(buf, "id", field.ID)
	writeAttr(buf, "data-length", strconv.Itoa(length))
	buf.WriteString(`><input type="hidden"`)
	writeAttr(buf, "name", field.Name)
	writeAttr(buf, "value", value)
	buf.WriteString(">")
	for idx, digit := range otp.Cells(value, length) {
		buf.WriteString("<input")
		writeAttr(buf, "type", cellType)
		writeAttr(buf, "id", fmt.Sprintf("%s-%d", field.ID, idx))
		buf.WriteString(` inputmode="numeric" maxlength="1" autocomplete="one-time-code"`)
		writeAttr(buf, "aria-label", fmt.Sprintf("Digit %d of %d", idx+1, length))
		writeAttr(buf, "class", cellClasses)
		writeAttr(buf, "value", digit)
		writeBool(buf, "disabled", field.Disabled)
		writeInvalid(buf, field)
		buf.WriteString(">")
	}
	buf.WriteString("</div>")
	if input.ResendSeconds > 0 {
		buf.WriteString(`<button type="button" class="mt-2 text-sm text-blue-600 disabled:text-gray-400" data-formkit-resend`)
		writeAttr(buf, "data-cooldown", strconv.Itoa(input.ResendSeconds))
		writeAttr(buf, "data-action", input.ResendAction)
		buf.WriteString(">Resend code</button>")
	}
}

func writePhone(buf *strings.Builder, field form.FieldView, input form.PhoneInput) {
	countries := input.CountryList()
	dial, number := splitPhone(stringValue(field.Value), countries, input.DefaultCountry)

	buf.WriteString(`<div class="flex gap-2"`)
	writeAttr(buf, "id", field.ID+"-group")
	buf.WriteString(`><select`)
	writeAttr(buf, "name", field.Name+"_country")
	writeAttr(buf, "aria-label", "Country code")
	writeAttr(buf, "class", style.Join(withoutClass(field.InputClasses, "w-full"), "w-28"))
	writeBool(buf, "disabled", field.Disabled)
	buf.WriteString(">")
	for _, country := range countries {
		buf.WriteString("<option")
		writeAttr(buf, "value", country.Dial)
		writeBool(buf, "selected", country.Dial == dial)
		buf.WriteString(">")
		label := country.Code + " " + country.Dial
		buf.WriteString(html.EscapeString(label))
		buf.WriteString("</option>")
	}
	buf.WriteString(`</select><input type="tel" inputmode="tel" autocomplete="tel-national"`)
	writeCommonAttrs(buf, field)
	writeAttr(buf, "value", number)
	writeAttr(buf, "placeholder", input.Placeholder)
	buf.WriteString("></div>")
}

func writeDate(buf *strings.Builder, field form.FieldView, input form.DateInput, now time.Time) {
	selected := timeValue(field.Value)
	buf.WriteString(`<input type="date"`)
	writeCommonAttrs(buf, field)
	if !selected.IsZero() {
		writeAttr(buf, "value", selected.Format(dateLayout))
	}
	if !input.Min.IsZero() {
		writeAttr(buf, "min", input.Min.Format(dateLayout))
	}
	if !input.Max.IsZero() {
		writeAttr(buf, "max", input.Max.Format(dateLayout))
	}
	buf.WriteString(">")
	if !input.ShowCalendar {
		return
	}

	today := input.Today
	if today.IsZero() {
		today = now
	}
	anchor := selected
	if anchor.IsZero() {
		anchor = today
	}
	grid := calendar.Month(anchor.Year(), anchor.Month(), calendar.Options{
		WeekStart: input.WeekStart,
		Today:     today,
		Selected:  selected,
		Min:       input.Min,
		Max:       input.Max,
	})
	writeCalendar(buf, field, grid)
}

func writeCalendar(buf *strings.Builder, field form.FieldView, grid calendar.Grid) {
	buf.WriteString(`<table class="formkit-calendar mt-2 w-full text-center text-sm" data-formkit-calendar`)
	writeAttr(buf, "data-target", field.ID)
	writeAttr(buf, "aria-label", fmt.Sprintf("%s %d", grid.Month, grid.Year))
	buf.WriteString("><thead><tr>")
	for _, day := range grid.Weekdays {
		buf.WriteString(`<th scope="col" class="py-1 font-medium text-gray-500">`)
		buf.WriteString(day.String()[:2])
		buf.WriteString("</th>")
	}
	buf.WriteString("</tr></thead><tbody>")
	for _, week := range grid.Weeks {
		buf.WriteString("<tr>")
		for _, day := range week {
			classes := "rounded-md px-2 py-1"
			switch {
			case day.Selected:
				classes = style.Join(classes, "bg-blue-600 text-white")
			case day.Today:
				classes = style.Join(classes, "font-semibold text-blue-600")
			case !day.InMonth:
				classes = style.Join(classes, "text-gray-400")
			}
			buf.WriteString(`<td><button type="button"`)
			writeAttr(buf, "class", classes)
			writeAttr(buf, "data-date", day.Date.Format(dateLayout))
			writeBool(buf, "disabled", day.Disabled)
			if day.Selected {
				buf.WriteString(` aria-pressed="true"`)
			}
			buf.WriteString(">")
			buf.WriteString(strconv.Itoa(day.Date.Day()))
			buf.WriteString("</button></td>")
		}
		buf.WriteString("</tr>")
	}
	buf.WriteString("</tbody></table>")
}

func writeTime(buf *strings.Builder, field form.FieldView, input form.TimeInput) {
	value := ""
	if raw := stringValue(field.Value); raw != "" {
		if parsed, err := clock.Parse(raw); err == nil {
			if input.Step > 0 {
				parsed = parsed.Snap(input.Step)
			}
			value = parsed.Format24()
		}
	}
	buf.WriteString(`<input type="time"`)
	writeCommonAttrs(buf, field)
	writeAttr(buf, "value", value)
	if input.Step > 0 {
		writeAttr(buf, "step", strconv.Itoa(input.Step*60))
	}
	writeAttr(buf, "min", normalizeClock(input.Min))
	writeAttr(buf, "max", normalizeClock(input.Max))
	if input.Use12Hour {
		writeAttr(buf, "data-hour-cycle", "h12")
	}
	buf.WriteString(">")
}

func writeFile(buf *strings.Builder, field form.FieldView, input form.FileInput) {
	if input.DropZone {
		buf.WriteString(`<label class="flex cursor-pointer flex-col items-center justify-center gap-2 rounded-lg border-2 border-dashed border-gray-300 p-6 text-sm text-gray-500 hover:border-blue-500" data-formkit-dropzone`)
		writeAttr(buf, "for", field.ID)
		if input.MaxSize > 0 {
			writeAttr(buf, "data-max-size", strconv.FormatInt(input.MaxSize, 10))
		}
		buf.WriteString("><span>Drop files here or click to browse</span>")
	}
	buf.WriteString(`<input type="file"`)
	name := field.Name
	if input.Multiple {
		name += "[]"
	}
	writeAttr(buf, "id", field.ID)
	writeAttr(buf, "name", name)
	class := field.InputClasses
	if input.DropZone {
		class = "sr-only"
	}
	writeAttr(buf, "class", class)
	writeAttr(buf, "accept", strings.Join(input.Accept, ","))
	writeBool(buf, "multiple", input.Multiple)
	writeBool(buf, "required", field.Required)
	writeBool(buf, "disabled", field.Disabled)
	writeInvalid(buf, field)
	buf.WriteString(">")
	if input.DropZone {
		buf.WriteString("</label>")
	}
}

func writeSearch(buf *strings.Builder, field form.FieldView, input form.SearchInput) {
	buf.WriteString(`<div class="relative" role="search"><input type="search"`)
	writeCommonAttrs(buf, field)
	writeAttr(buf, "value", stringValue(field.Value))
	writeAttr(buf, "placeholder", input.Placeholder)
	if input.Endpoint != "" {
		writeAttr(buf, "data-formkit-search", input.Endpoint)
		writeAttr(buf, "data-min-chars", strconv.Itoa(max(input.MinChars, 1)))
		writeAttr(buf, "autocomplete", "off")
		writeAttr(buf, "aria-controls", field.ID+"-results")
	}
	buf.WriteString(">")
	if input.Endpoint != "" {
		buf.WriteString(`<ul class="absolute z-10 mt-1 hidden w-full rounded-md border border-gray-200 bg-white shadow" role="listbox"`)
		writeAttr(buf, "id", field.ID+"-results")
		buf.WriteString("></ul>")
	}
	buf.WriteString("</div>")
}

func writeCommonAttrs(buf *strings.Builder, field form.FieldView) {
	writeAttr(buf, "id", field.ID)
	writeAttr(buf, "name", field.Name)
	writeAttr(buf, "class", field.InputClasses)
	writeBool(buf, "required", field.Required)
	writeBool(buf, "disabled", field.Disabled)
	writeInvalid(buf, field)
	if !field.Bare && field.Message != "" {
		writeAttr(buf, "aria-describedby", field.ID+"-message")
	}
}

func writeInvalid(buf *strings.Builder, field form.FieldView) {
	if field.Status == style.StatusError {
		buf.WriteString(` aria-invalid="true"`)
	}
}

func writeLengthAttrs(buf *strings.Builder, minLength, maxLength int) {
	if minLength > 0 {
		writeAttr(buf, "minlength", strconv.Itoa(minLength))
	}
	if maxLength > 0 {
		writeAttr(buf, "maxlength", strconv.Itoa(maxLength))
	}
}

func writeAttr(buf *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteByte('"')
}

func writeBool(buf *strings.Builder, name string, set bool) {
	if set {
		buf.WriteByte(' ')
		buf.WriteString(name)
	}
}

func normalizeClock(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	parsed, err := clock.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.Format24()
}
