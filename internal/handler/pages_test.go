package handler

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func createTestPage(t *testing.T, e *testEnv, slug, title, body string) PageResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/pages", CreatePageRequest{
		Slug:  slug,
		Title: title,
		Body:  body,
	}, e.adminCookie(t))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create page status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var page PageResponse
	decodeData(t, rec, &page)
	return page
}

func TestCreatePageSlugFromTitle(t *testing.T) {
	e := newTestEnv(t, nil)

	page := createTestPage(t, e, "", "Про нас", "Text")
	if page.Slug != "pro-nas" {
		t.Errorf("Slug = %q, want pro-nas", page.Slug)
	}
}

func TestCreatePageSlugConflict(t *testing.T) {
	e := newTestEnv(t, nil)
	createTestPage(t, e, "about", "About", "")

	rec := e.do(t, http.MethodPost, "/api/pages", CreatePageRequest{
		Slug:  "about",
		Title: "About again",
	}, e.adminCookie(t))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestCreatePageInvalidSlug(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.do(t, http.MethodPost, "/api/pages", CreatePageRequest{
		Slug:  "Not A Slug!",
		Title: "x",
	}, e.adminCookie(t))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetPageBySlugRendersBody(t *testing.T) {
	e := newTestEnv(t, nil)
	createTestPage(t, e, "how-to-join", "How to join",
		"# Steps\n\nFill the form.\n\n<script>alert(1)</script>")

	rec := e.do(t, http.MethodGet, "/api/pages/how-to-join", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var page PageResponse
	decodeData(t, rec, &page)
	if !strings.Contains(page.BodyHTML, "<h1") {
		t.Errorf("markdown not rendered: %q", page.BodyHTML)
	}
	if strings.Contains(page.BodyHTML, "<script") {
		t.Errorf("script survived sanitization: %q", page.BodyHTML)
	}
	// The raw markdown source stays intact for editing.
	if !strings.HasPrefix(page.Body, "# Steps") {
		t.Errorf("Body = %q", page.Body)
	}

	rec = e.do(t, http.MethodGet, "/api/pages/no-such-page", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing page: status = %d, want 404", rec.Code)
	}
}

func TestListPagesOmitsRenderedBody(t *testing.T) {
	e := newTestEnv(t, nil)
	createTestPage(t, e, "about", "About", "# About us")

	rec := e.do(t, http.MethodGet, "/api/pages", nil)
	var pages []PageResponse
	decodeData(t, rec, &pages)
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	if pages[0].BodyHTML != "" {
		t.Errorf("list rendered BodyHTML = %q, want empty", pages[0].BodyHTML)
	}
}

func TestUpdatePageSlugConflict(t *testing.T) {
	e := newTestEnv(t, nil)
	createTestPage(t, e, "about", "About", "")
	second := createTestPage(t, e, "contacts", "Contacts", "")
	cookie := e.adminCookie(t)
	path := "/api/pages/" + strconv.FormatInt(second.ID, 10)

	taken := "about"
	rec := e.do(t, http.MethodPut, path, UpdatePageRequest{Slug: &taken}, cookie)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}

	// Re-submitting its own slug is not a conflict.
	own := "contacts"
	newTitle := "Our contacts"
	rec = e.do(t, http.MethodPut, path, UpdatePageRequest{Slug: &own, Title: &newTitle}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var page PageResponse
	decodeData(t, rec, &page)
	if page.Title != "Our contacts" {
		t.Errorf("Title = %q", page.Title)
	}
}

func TestDeletePage(t *testing.T) {
	e := newTestEnv(t, nil)
	page := createTestPage(t, e, "about", "About", "")
	cookie := e.adminCookie(t)

	rec := e.do(t, http.MethodDelete, "/api/pages/"+strconv.FormatInt(page.ID, 10), nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/pages/about", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted page still served: status = %d", rec.Code)
	}
}
