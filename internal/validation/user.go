package validation

import "strings"

// Registration is a validated sign-up request.
type Registration struct {
	Username string
	Password string
	Email    string
	FullName string
}

// ValidateRegistration checks all four sign-up fields and aggregates every
// failure.
func ValidateRegistration(username, password, email, fullName any) (Registration, error) {
	var c Collector
	r := Registration{
		Username: c.Text(KindUsername, "username", username),
		Password: c.Text(KindPassword, "password", password),
		Email:    c.Text(KindEmail, "email", email),
		FullName: c.Text(KindFullName, "full_name", fullName),
	}
	return r, c.Err()
}

// ValidateLogin only checks that both credentials are present strings.  The
// username is trimmed; the password is returned as typed.  Patterns are not
// applied so a malformed username fails like any other wrong credential.
func ValidateLogin(username, password any) (string, string, error) {
	var errs Errors
	user, ok := username.(string)
	if !ok || isMissing(username) {
		errs = append(errs, required("username"))
	}
	pass, ok := password.(string)
	if !ok || pass == "" {
		errs = append(errs, required("password"))
	}
	if len(errs) > 0 {
		return "", "", errs
	}
	return strings.TrimSpace(user), pass, nil
}
