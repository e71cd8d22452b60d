package newsletterservice

import (
	"regexp"

	"github.com/sushihentaime/folio/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

func validateFirstName(v *common.Validator, name string) {
	v.Check(v.MaxRunes(name, 100), "first_name", "must not be more than 100 characters long")
}
