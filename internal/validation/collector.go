package validation

import "errors"

// Collector validates several fields of one input and keeps every failure,
// so callers can report the full list in a single response.
type Collector struct {
	errs Errors
}

// Text validates a textual kind and returns the sanitized value, or "" when
// the field was rejected.
func (c *Collector) Text(kind Kind, field string, raw any) string {
	v, err := Validate(kind, field, raw)
	if err != nil {
		c.add(err)
		return ""
	}
	s, _ := v.(string)
	return s
}

// Number validates a numeric kind and returns the parsed value, or 0 when
// the field was rejected.
func (c *Collector) Number(kind Kind, field string, raw any) int {
	v, err := Validate(kind, field, raw)
	if err != nil {
		c.add(err)
		return 0
	}
	n, _ := v.(int)
	return n
}

// Merge appends the failures of another validation, prefixing each reason.
func (c *Collector) Merge(prefix string, err error) {
	var errs Errors
	if errors.As(err, &errs) {
		for _, fe := range errs {
			c.errs = append(c.errs, &FieldError{Field: fe.Field, Reason: prefix + fe.Reason})
		}
		return
	}
	if err != nil {
		c.add(err)
	}
}

func (c *Collector) add(err error) {
	var fe *FieldError
	if errors.As(err, &fe) {
		c.errs = append(c.errs, fe)
		return
	}
	c.errs = append(c.errs, &FieldError{Reason: err.Error()})
}

// Err returns the aggregated Errors, or nil when every field passed.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
