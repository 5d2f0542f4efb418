package handler

import (
	"net/http"
	"strconv"
	"testing"
)

func createTestTestimonial(t *testing.T, e *testEnv, req CreateTestimonialRequest) TestimonialResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/testimonials", req, e.adminCookie(t))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create testimonial status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp TestimonialResponse
	decodeData(t, rec, &resp)
	return resp
}

func boolPtr(b bool) *bool    { return &b }
func int64Ptr(n int64) *int64 { return &n }

func TestTestimonialPublishedFilter(t *testing.T) {
	e := newTestEnv(t, nil)
	createTestTestimonial(t, e, CreateTestimonialRequest{Author: "Olena", Text: "Wonderful trip"})
	createTestTestimonial(t, e, CreateTestimonialRequest{
		Author:      "Draft",
		Text:        "Not ready yet",
		IsPublished: boolPtr(false),
	})

	rec := e.do(t, http.MethodGet, "/api/testimonials", nil)
	var public []TestimonialResponse
	decodeData(t, rec, &public)
	if len(public) != 1 || public[0].Author != "Olena" {
		t.Errorf("public testimonials = %+v, want only the published one", public)
	}

	rec = e.do(t, http.MethodGet, "/api/admin/testimonials", nil, e.adminCookie(t))
	var all []TestimonialResponse
	decodeData(t, rec, &all)
	if len(all) != 2 {
		t.Errorf("admin testimonials = %d, want 2", len(all))
	}
}

func TestCreateTestimonialValidation(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.adminCookie(t)

	tests := []struct {
		name string
		req  CreateTestimonialRequest
	}{
		{"missing author", CreateTestimonialRequest{Text: "hi"}},
		{"missing text", CreateTestimonialRequest{Author: "A"}},
		{"rating too low", CreateTestimonialRequest{Author: "A", Text: "hi", Rating: int64Ptr(0)}},
		{"rating too high", CreateTestimonialRequest{Author: "A", Text: "hi", Rating: int64Ptr(6)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/api/testimonials", tt.req, cookie)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateTestimonialWithRating(t *testing.T) {
	e := newTestEnv(t, nil)

	resp := createTestTestimonial(t, e, CreateTestimonialRequest{
		Author: "Petro",
		Text:   "Five stars",
		Rating: int64Ptr(5),
	})
	if resp.Rating == nil || *resp.Rating != 5 {
		t.Errorf("Rating = %v, want 5", resp.Rating)
	}
	if !resp.IsPublished {
		t.Error("new testimonial should default to published")
	}
}

func TestUpdateTestimonialClearRating(t *testing.T) {
	e := newTestEnv(t, nil)
	created := createTestTestimonial(t, e, CreateTestimonialRequest{
		Author: "Petro",
		Text:   "Five stars",
		Rating: int64Ptr(5),
	})
	path := "/api/testimonials/" + strconv.FormatInt(created.ID, 10)

	rec := e.do(t, http.MethodPut, path, UpdateTestimonialRequest{ClearRating: true}, e.adminCookie(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var updated TestimonialResponse
	decodeData(t, rec, &updated)
	if updated.Rating != nil {
		t.Errorf("Rating = %v after clear, want nil", updated.Rating)
	}
	if updated.Author != "Petro" {
		t.Errorf("Author = %q, untouched field changed", updated.Author)
	}
}

func TestUpdateTestimonialUnpublish(t *testing.T) {
	e := newTestEnv(t, nil)
	created := createTestTestimonial(t, e, CreateTestimonialRequest{Author: "Olena", Text: "Great"})
	path := "/api/testimonials/" + strconv.FormatInt(created.ID, 10)

	rec := e.do(t, http.MethodPut, path, UpdateTestimonialRequest{
		IsPublished: boolPtr(false),
	}, e.adminCookie(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/testimonials", nil)
	var public []TestimonialResponse
	decodeData(t, rec, &public)
	if len(public) != 0 {
		t.Errorf("public testimonials = %d after unpublish, want 0", len(public))
	}
}

func TestDeleteTestimonial(t *testing.T) {
	e := newTestEnv(t, nil)
	created := createTestTestimonial(t, e, CreateTestimonialRequest{Author: "Olena", Text: "Great"})
	cookie := e.adminCookie(t)
	path := "/api/testimonials/" + strconv.FormatInt(created.ID, 10)

	rec := e.do(t, http.MethodDelete, path, nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodDelete, path, nil, cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete: status = %d, want 404", rec.Code)
	}
}
