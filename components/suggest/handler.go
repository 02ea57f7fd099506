package suggest

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/goliatone/go-formkit/pkg/form"
)

// StatusCoder is implemented by guard errors that pick their own status.
type StatusCoder interface {
	StatusCode() int
}

// StatusError rejects a request with Code. Err, when set, is the message.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.StatusCode())
	}
	return e.Err.Error()
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code < 100 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler answers GET and HEAD requests with {"data": [...]} drawn from
// choices. The slice is copied so later changes by the caller are not seen.
func Handler(choices []form.Choice, fns ...OptionFn) http.Handler {
	h := &handler{choices: slices.Clone(choices), opts: NewOptions(fns...)}
	return h
}

type handler struct {
	choices []form.Choice
	opts    Options
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			status := http.StatusForbidden
			var coder StatusCoder
			if errors.As(err, &coder) {
				status = coder.StatusCode()
			}
			http.Error(w, http.StatusText(status), status)
			return
		}
	}

	params := r.URL.Query()
	limit, _ := strconv.Atoi(params.Get(h.opts.LimitParam))
	data := Search(h.choices, params.Get(h.opts.SearchParam), limit, h.opts)
	if data == nil {
		data = []Option{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_ = json.NewEncoder(w).Encode(struct {
		Data []Option `json:"data"`
	}{data})
}
