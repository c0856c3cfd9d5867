package blogs_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/waygo/internal/app/features/blogs"
	blogstore "github.com/dalemusser/waygo/internal/app/store/blogs"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/dalemusser/waygo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeStore struct {
	posts []models.Blog
	err   error
}

func (f *fakeStore) List(context.Context) ([]models.Blog, error) {
	return f.posts, f.err
}

func (f *fakeStore) GetByID(_ context.Context, hexID string) (models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.Blog{}, blogstore.ErrInvalidID
	}
	for _, p := range f.posts {
		if p.ID == oid {
			return p, nil
		}
	}
	return models.Blog{}, blogstore.ErrBlogNotFound
}

func TestBlogs(t *testing.T) {
	post := models.Blog{ID: primitive.NewObjectID(), Title: "Travel tips"}
	router := blogs.Routes(blogs.NewHandler(&fakeStore{posts: []models.Blog{post}}, zap.NewNop()))

	tests := []struct {
		target string
		want   int
	}{
		{"/", http.StatusOK},
		{"/" + post.ID.Hex(), http.StatusOK},
		{"/" + primitive.NewObjectID().Hex(), http.StatusNotFound},
		{"/bad", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", tt.target, nil))
		testutil.AssertStatus(t, rec, tt.want)
	}
}

func TestList_StoreError(t *testing.T) {
	h := blogs.NewHandler(&fakeStore{err: errors.New("down")}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/blogs", nil))

	testutil.AssertStatus(t, rec, http.StatusInternalServerError)
	var body map[string]string
	testutil.DecodeJSON(t, rec, &body)
	if body["error"] != "Failed to fetch blogs" {
		t.Errorf("body: %v", body)
	}
}
