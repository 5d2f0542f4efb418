package handler

import (
	"net/http"
	"strconv"
	"testing"
)

func TestCreateGalleryWithImages(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.do(t, http.MethodPost, "/api/galleries", CreateGalleryRequest{
		Title: "Athos 2026",
		Images: []GalleryImageRequest{
			{URL: "https://cdn.example.com/a.jpg", PublicID: "a", Alt: "monastery"},
			{URL: "https://cdn.example.com/b.jpg", PublicID: "b"},
		},
	}, e.adminCookie(t))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var gallery GalleryResponse
	decodeData(t, rec, &gallery)
	if len(gallery.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(gallery.Images))
	}
	if gallery.Images[0].Position != 0 || gallery.Images[1].Position != 1 {
		t.Errorf("positions = %d, %d", gallery.Images[0].Position, gallery.Images[1].Position)
	}
}

func TestCreateGalleryMissingImageURL(t *testing.T) {
	e := newTestEnv(t, nil)

	rec := e.do(t, http.MethodPost, "/api/galleries", CreateGalleryRequest{
		Title:  "Broken",
		Images: []GalleryImageRequest{{PublicID: "no-url"}},
	}, e.adminCookie(t))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	// Nothing was half-committed.
	rec = e.do(t, http.MethodGet, "/api/galleries", nil)
	var galleries []GalleryResponse
	decodeData(t, rec, &galleries)
	if len(galleries) != 0 {
		t.Errorf("galleries after failed create = %d, want 0", len(galleries))
	}
}

func TestCreateGalleryUnknownEvent(t *testing.T) {
	e := newTestEnv(t, nil)

	badEvent := int64(999)
	rec := e.do(t, http.MethodPost, "/api/galleries", CreateGalleryRequest{
		Title:   "Orphan",
		EventID: &badEvent,
	}, e.adminCookie(t))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGalleryEventLink(t *testing.T) {
	e := newTestEnv(t, nil)
	event := createTestEvent(t, e, "Pochaiv", "completed")
	cookie := e.adminCookie(t)

	rec := e.do(t, http.MethodPost, "/api/galleries", CreateGalleryRequest{
		Title:   "Pochaiv photos",
		EventID: &event.ID,
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var gallery GalleryResponse
	decodeData(t, rec, &gallery)
	if gallery.EventID == nil || *gallery.EventID != event.ID {
		t.Fatalf("EventID = %v, want %d", gallery.EventID, event.ID)
	}

	// Deleting the event detaches the gallery instead of removing it.
	rec = e.do(t, http.MethodDelete, "/api/events/"+strconv.FormatInt(event.ID, 10), nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete event status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/galleries/"+strconv.FormatInt(gallery.ID, 10), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get gallery status = %d", rec.Code)
	}
	decodeData(t, rec, &gallery)
	if gallery.EventID != nil {
		t.Errorf("EventID = %v after event delete, want nil", gallery.EventID)
	}
}

func TestAddAndDeleteGalleryImage(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.adminCookie(t)

	rec := e.do(t, http.MethodPost, "/api/galleries", CreateGalleryRequest{Title: "Empty"}, cookie)
	var gallery GalleryResponse
	decodeData(t, rec, &gallery)
	base := "/api/galleries/" + strconv.FormatInt(gallery.ID, 10)

	rec = e.do(t, http.MethodPost, base+"/images", GalleryImageRequest{
		URL:      "https://cdn.example.com/new.jpg",
		PublicID: "new",
		Position: 5,
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add image status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var img GalleryImageResponse
	decodeData(t, rec, &img)

	rec = e.do(t, http.MethodDelete, base+"/images/"+strconv.FormatInt(img.ID, 10), nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete image status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, base, nil)
	decodeData(t, rec, &gallery)
	if len(gallery.Images) != 0 {
		t.Errorf("images after delete = %d, want 0", len(gallery.Images))
	}
}

func TestDeleteGalleryRemovesImages(t *testing.T) {
	e := newTestEnv(t, nil)
	cookie := e.adminCookie(t)

	rec := e.do(t, http.MethodPost, "/api/galleries", CreateGalleryRequest{
		Title:  "Doomed",
		Images: []GalleryImageRequest{{URL: "https://cdn.example.com/x.jpg"}},
	}, cookie)
	var gallery GalleryResponse
	decodeData(t, rec, &gallery)

	rec = e.do(t, http.MethodDelete, "/api/galleries/"+strconv.FormatInt(gallery.ID, 10), nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/galleries/"+strconv.FormatInt(gallery.ID, 10), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted gallery still served: status = %d", rec.Code)
	}
}
