package postservice

import (
	"github.com/sushihentaime/folio/internal/common"
)

const (
	maxTitleRunes    = 200
	maxExcerptRunes  = 500
	maxCategoryRunes = 50
)

func validateTitle(v *common.Validator, title string) {
	v.Check(v.NotBlank(title), "title", "must be provided")
	v.Check(v.MaxRunes(title, maxTitleRunes), "title", "must not be more than 200 characters long")
}

func validateExcerpt(v *common.Validator, excerpt string) {
	v.Check(v.NotBlank(excerpt), "excerpt", "must be provided")
	v.Check(v.MaxRunes(excerpt, maxExcerptRunes), "excerpt", "must not be more than 500 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.NotBlank(content), "content", "must be provided")
}

func validateCategory(v *common.Validator, category string) {
	v.Check(v.NotBlank(category), "category", "must be provided")
	v.Check(v.MaxRunes(category, maxCategoryRunes), "category", "must not be more than 50 characters long")
	v.Check(category != AllCategories, "category", "is reserved for filtering")
}

func validateImage(v *common.Validator, image string) {
	if image == "" {
		return
	}
	v.Check(v.ImageReference(image), "image", "must be a site path, an http(s) URL or a data URI")
}

func validateDate(v *common.Validator, date *Date) {
	if date == nil {
		return
	}
	v.Check(!date.IsZero(), "date", "must be a valid date")
}

func validatePostInput(v *common.Validator, in *PostInput) {
	validateTitle(v, in.Title)
	validateExcerpt(v, in.Excerpt)
	validateContent(v, in.Content)
	validateCategory(v, in.Category)
	validateDate(v, in.Date)
	validateImage(v, in.Image)
}

// validatePostPatch only checks the fields being changed.
func validatePostPatch(v *common.Validator, p *PostPatch) {
	if p.Title != nil {
		validateTitle(v, *p.Title)
	}
	if p.Excerpt != nil {
		validateExcerpt(v, *p.Excerpt)
	}
	if p.Content != nil {
		validateContent(v, *p.Content)
	}
	if p.Category != nil {
		validateCategory(v, *p.Category)
	}
	validateDate(v, p.Date)
	if p.Image != nil {
		validateImage(v, *p.Image)
	}
}
