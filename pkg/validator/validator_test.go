package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewInput struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment" validate:"max=2000"`
	BusinessID string `json:"businessId" validate:"required,notblank"`
}

type signupInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,notblank"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(reviewInput{Rating: 4, BusinessID: "b-1"}))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	err := Validate(reviewInput{Rating: 9})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "must be less than or equal to 5", fields["rating"])
	assert.Equal(t, "is required", fields["businessId"])
}

func TestValidate_NotBlank(t *testing.T) {
	err := Validate(reviewInput{Rating: 3, BusinessID: "   "})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "is required", valErr.Fields()["businessId"])

	blank := "  "
	err = Validate(signupInput{Email: "a@b.co", Password: "secret1", Nickname: &blank})
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "nickname")

	assert.NoError(t, Validate(signupInput{Email: "a@b.co", Password: "secret1"}))
}

func TestValidate_StringLengthMessages(t *testing.T) {
	err := Validate(signupInput{Email: "not-an-email", Password: "abc"})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 6 characters", fields["password"])
	assert.Contains(t, err.Error(), "field 'password'")
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":5,"businessId":"b-7"}`))
	var in reviewInput
	require.NoError(t, DecodeAndValidate(r, &in))
	assert.Equal(t, 5, in.Rating)
	assert.Equal(t, "b-7", in.BusinessID)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":`))
	var in reviewInput
	err := DecodeAndValidate(r, &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_BodyTooLarge(t *testing.T) {
	big := `{"comment":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	var in reviewInput
	require.Error(t, DecodeAndValidate(r, &in))
}
