package dtos

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SubmitApplicationReq struct {
	OpportunityID uint   `json:"opportunity_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Contact       string `json:"contact"`
	Time          string `json:"time"`
	Duration      string `json:"duration"`
	Location      string `json:"location"`
	Comments      string `json:"comments"`
}

func (r SubmitApplicationReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OpportunityID, validation.Required),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Phone, validation.Length(0, 32)),
		validation.Field(&r.Contact, validation.Length(0, 64)),
		validation.Field(&r.Comments, validation.Length(0, 4000)),
	)
}

// TransitionStatusReq changes an application status. Revision, when sent,
// must match the stored revision.
type TransitionStatusReq struct {
	Status   string `json:"status"`
	Note     string `json:"note"`
	Revision *int   `json:"revision,omitempty"`
}

func (r TransitionStatusReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Note, validation.Length(0, 4000)),
	)
}

type AddNoteReq struct {
	Note     string `json:"note"`
	Revision *int   `json:"revision,omitempty"`
}

func (r AddNoteReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Note, validation.Length(0, 4000)),
	)
}

type OpportunityReq struct {
	Title        string   `json:"title"`
	Mode         string   `json:"mode"`
	Time         string   `json:"time"`
	Duration     string   `json:"duration"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Tags         []string `json:"tags"`
	Image        string   `json:"image"`
}

func (r OpportunityReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(notBlank), validation.Length(1, 200)),
		validation.Field(&r.Mode, validation.Length(0, 64)),
		validation.Field(&r.Duration, validation.Length(0, 64)),
		validation.Field(&r.Tags, validation.Each(validation.Length(1, 40))),
	)
}

type VerifyEmailReq struct {
	Email string `json:"email"`
}

func (r VerifyEmailReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
	)
}

type AssignChampionReq struct {
	ApplicationID uint `json:"application_id"`
}

func (r AssignChampionReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ApplicationID, validation.Required),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}
