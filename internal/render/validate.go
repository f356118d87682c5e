package render

import (
	"strconv"
	"strings"

	"mentorsurvey/internal/model"
)

// Validate checks the answers present for form inputs. Missing or empty values
// are accepted so instances can be saved partially; keys the form does not
// declare are passed through.
func Validate(form model.Form, answers model.Answers) error {
	verr := &model.ValidationError{}
	inputs := form.Inputs()
	for qid, value := range answers {
		el, ok := inputs[qid]
		if !ok || isBlank(value) {
			continue
		}
		switch el.Type {
		case model.ElementSlider:
			n, ok := toFloat(value)
			if !ok {
				verr.Fields = append(verr.Fields, model.FieldError{Field: qid, Message: "must be a number"})
				continue
			}
			lo, hi := bounds(el)
			if n < float64(lo) || n > float64(hi) {
				verr.Fields = append(verr.Fields, model.FieldError{
					Field:   qid,
					Message: "must be between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi),
				})
			}
		case model.ElementNumber:
			if _, ok := toFloat(value); !ok {
				verr.Fields = append(verr.Fields, model.FieldError{Field: qid, Message: "must be a number"})
			}
		case model.ElementSelect:
			s, _ := value.(string)
			if !hasOption(el.Options, s) {
				verr.Fields = append(verr.Fields, model.FieldError{Field: qid, Message: "is not one of the listed options"})
			}
		case model.ElementText:
			if _, ok := value.(string); !ok {
				verr.Fields = append(verr.Fields, model.FieldError{Field: qid, Message: "must be text"})
			}
		}
	}
	return verr.OrNil()
}

func bounds(el model.Element) (int, int) {
	lo, hi := 0, 10
	if el.Min != nil {
		lo = *el.Min
	}
	if el.Max != nil {
		hi = *el.Max
	}
	return lo, hi
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func hasOption(options []model.Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Numeric converts a stored answer value to a float when it holds a number.
func Numeric(v any) (float64, bool) {
	if isBlank(v) {
		return 0, false
	}
	return toFloat(v)
}
