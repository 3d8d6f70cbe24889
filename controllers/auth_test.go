package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Validation runs before any persistence call, so the rejection paths are
// exercised without a database behind the handler.
func TestRegisterUserValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "invalid json",
			body: `{"fullname": `,
			want: "Invalid request payload",
		},
		{
			name: "missing name",
			body: `{"email":"a@b.com","password":"secret1","contact":"9876543210"}`,
			want: "Name is required",
		},
		{
			name: "name too short",
			body: `{"fullname":"Al","email":"a@b.com","password":"secret1","contact":"9876543210"}`,
			want: "Kindly provide a valid Name",
		},
		{
			name: "missing email",
			body: `{"fullname":"Alice","password":"secret1","contact":"9876543210"}`,
			want: "Email is required",
		},
		{
			name: "invalid email",
			body: `{"fullname":"Alice","email":"not-an-email","password":"secret1","contact":"9876543210"}`,
			want: "Invalid email found. Kindly provide a valid email!",
		},
		{
			name: "missing password",
			body: `{"fullname":"Alice","email":"a@b.com","contact":"9876543210"}`,
			want: "Password is required",
		},
		{
			name: "password too short",
			body: `{"fullname":"Alice","email":"a@b.com","password":"abc","contact":"9876543210"}`,
			want: "Password must be atleast 6 characters long",
		},
		{
			name: "missing contact",
			body: `{"fullname":"Alice","email":"a@b.com","password":"secret1"}`,
			want: "Contact is required",
		},
		{
			name: "contact wrong length",
			body: `{"fullname":"Alice","email":"a@b.com","password":"secret1","contact":"12345"}`,
			want: "Kindly provide a valid contact number",
		},
		{
			name: "unknown role",
			body: `{"fullname":"Alice","email":"a@b.com","password":"secret1","contact":"9876543210","role":"landlord"}`,
			want: "Invalid role",
		},
	}

	handler := RegisterUser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
		})
	}
}

func TestLoginUserMissingFields(t *testing.T) {
	handler := LoginUser()

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"password":"secret1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kindly provide an Email")

	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"a@b.com"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kindly provide a Password")
}

func TestSearchPropertiesRejectsMalformedPrice(t *testing.T) {
	handler := SearchProperties()

	req := httptest.NewRequest(http.MethodPost, "/api/search/property", strings.NewReader(`{"price":"affordable"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid price range")
}

func TestSearchPropertiesRejectsBadJSON(t *testing.T) {
	handler := SearchProperties()

	req := httptest.NewRequest(http.MethodPost, "/api/search/property", strings.NewReader(`{"city":`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request payload")
}
