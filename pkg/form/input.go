package form

import "time"

// Kind identifies an input variant.
type Kind string

const (
	KindText     Kind = "text"
	KindDropdown Kind = "dropdown"
	KindCheckbox Kind = "checkbox"
	KindOTP      Kind = "otp"
	KindPhone    Kind = "phone"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindFile     Kind = "file"
	KindSearch   Kind = "search"
)

// Kinds lists every input kind.
var Kinds = []Kind{
	KindText,
	KindDropdown,
	KindCheckbox,
	KindOTP,
	KindPhone,
	KindDate,
	KindTime,
	KindFile,
	KindSearch,
}

// Input is the closed set of input variants. Only the types in this package
// implement it; renderers switch over the concrete types.
type Input interface {
	Kind() Kind
	sealed()
}

// Choice is one selectable entry of a dropdown or checkbox group.
type Choice struct {
	Value    string `yaml:"value" json:"value"`
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// Text returns the label, defaulting to the value.
func (c Choice) Text() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Value
}

// TextInput is a single or multi line text control.
type TextInput struct {
	Type         string `yaml:"type,omitempty" json:"type,omitempty" validate:"omitempty,oneof=text email password number tel url"`
	Placeholder  string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	MinLength    int    `yaml:"minLength,omitempty" json:"minLength,omitempty" validate:"gte=0"`
	MaxLength    int    `yaml:"maxLength,omitempty" json:"maxLength,omitempty" validate:"gte=0"`
	Pattern      string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Autocomplete string `yaml:"autocomplete,omitempty" json:"autocomplete,omitempty"`
	Multiline    bool   `yaml:"multiline,omitempty" json:"multiline,omitempty"`
	Rows         int    `yaml:"rows,omitempty" json:"rows,omitempty" validate:"gte=0"`
}

// DropdownInput is a select control.
type DropdownInput struct {
	Choices     []Choice `yaml:"choices" json:"choices" validate:"dive"`
	Placeholder string   `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Multiple    bool     `yaml:"multiple,omitempty" json:"multiple,omitempty"`
	Searchable  bool     `yaml:"searchable,omitempty" json:"searchable,omitempty"`
}

// CheckboxInput is a single checkbox, a toggle switch, or a checkbox group
// when Choices is non-empty.
type CheckboxInput struct {
	Text    string   `yaml:"text,omitempty" json:"text,omitempty"`
	Choices []Choice `yaml:"choices,omitempty" json:"choices,omitempty" validate:"dive"`
	Toggle  bool     `yaml:"toggle,omitempty" json:"toggle,omitempty"`
}

// OTPInput renders one cell per digit of a one-time code.
type OTPInput struct {
	Length        int    `yaml:"length,omitempty" json:"length,omitempty" validate:"gte=0,lte=12"`
	Masked        bool   `yaml:"masked,omitempty" json:"masked,omitempty"`
	ResendSeconds int    `yaml:"resendSeconds,omitempty" json:"resendSeconds,omitempty" validate:"gte=0"`
	ResendAction  string `yaml:"resendAction,omitempty" json:"resendAction,omitempty"`
}

// Country is a dialling prefix offered by a phone input.
type Country struct {
	Code string `yaml:"code" json:"code"`
	Dial string `yaml:"dial" json:"dial"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// PhoneInput pairs a country prefix select with a number field.
type PhoneInput struct {
	Countries      []Country `yaml:"countries,omitempty" json:"countries,omitempty"`
	DefaultCountry string    `yaml:"defaultCountry,omitempty" json:"defaultCountry,omitempty"`
	Placeholder    string    `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// DefaultCountries is offered by phone inputs that list no countries.
var DefaultCountries = []Country{
	{Code: "US", Dial: "+1", Name: "United States"},
	{Code: "GB", Dial: "+44", Name: "United Kingdom"},
	{Code: "ES", Dial: "+34", Name: "Spain"},
	{Code: "DE", Dial: "+49", Name: "Germany"},
	{Code: "FR", Dial: "+33", Name: "France"},
	{Code: "MX", Dial: "+52", Name: "Mexico"},
	{Code: "IN", Dial: "+91", Name: "India"},
}

// CountryList returns the configured countries or DefaultCountries.
func (p PhoneInput) CountryList() []Country {
	if len(p.Countries) == 0 {
		return DefaultCountries
	}
	return p.Countries
}

// DateInput is a date field with an optional month calendar.
type DateInput struct {
	Min          time.Time    `yaml:"min,omitempty" json:"min,omitempty"`
	Max          time.Time    `yaml:"max,omitempty" json:"max,omitempty"`
	WeekStart    time.Weekday `yaml:"weekStart,omitempty" json:"weekStart,omitempty" validate:"gte=0,lte=6"`
	ShowCalendar bool         `yaml:"showCalendar,omitempty" json:"showCalendar,omitempty"`
	Today        time.Time    `yaml:"-" json:"-"`
}

// TimeInput is a time-of-day field.
type TimeInput struct {
	Step      int    `yaml:"step,omitempty" json:"step,omitempty" validate:"gte=0,lte=60"`
	Use12Hour bool   `yaml:"use12Hour,omitempty" json:"use12Hour,omitempty"`
	Min       string `yaml:"min,omitempty" json:"min,omitempty"`
	Max       string `yaml:"max,omitempty" json:"max,omitempty"`
}

// FileInput is an upload control, optionally rendered as a drop zone.
type FileInput struct {
	Accept   []string `yaml:"accept,omitempty" json:"accept,omitempty"`
	Multiple bool     `yaml:"multiple,omitempty" json:"multiple,omitempty"`
	MaxSize  int64    `yaml:"maxSize,omitempty" json:"maxSize,omitempty" validate:"gte=0"`
	DropZone bool     `yaml:"dropZone,omitempty" json:"dropZone,omitempty"`
}

// SearchInput is a search box, optionally backed by a suggestion endpoint.
type SearchInput struct {
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Endpoint    string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	MinChars    int    `yaml:"minChars,omitempty" json:"minChars,omitempty" validate:"gte=0"`
}

func (TextInput) Kind() Kind     { return KindText }
func (DropdownInput) Kind() Kind { return KindDropdown }
func (CheckboxInput) Kind() Kind { return KindCheckbox }
func (OTPInput) Kind() Kind      { return KindOTP }
func (PhoneInput) Kind() Kind    { return KindPhone }
func (DateInput) Kind() Kind     { return KindDate }
func (TimeInput) Kind() Kind     { return KindTime }
func (FileInput) Kind() Kind     { return KindFile }
func (SearchInput) Kind() Kind   { return KindSearch }

func (TextInput) sealed()     {}
func (DropdownInput) sealed() {}
func (CheckboxInput) sealed() {}
func (OTPInput) sealed()      {}
func (PhoneInput) sealed()    {}
func (DateInput) sealed()     {}
func (TimeInput) sealed()     {}
func (FileInput) sealed()     {}
func (SearchInput) sealed()   {}

// InputFor returns the zero payload for kind.
func InputFor(kind Kind) (Input, bool) {
	switch kind {
	case KindText:
		return TextInput{}, true
	case KindDropdown:
		return DropdownInput{}, true
	case KindCheckbox:
		return CheckboxInput{}, true
	case KindOTP:
		return OTPInput{}, true
	case KindPhone:
		return PhoneInput{}, true
	case KindDate:
		return DateInput{}, true
	case KindTime:
		return TimeInput{}, true
	case KindFile:
		return FileInput{}, true
	case KindSearch:
		return SearchInput{}, true
	default:
		return nil, false
	}
}
