package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/ragflow/store"
)

type fakeLister struct {
	materials []store.Material
	err       error
}

func (f *fakeLister) ListMaterials(context.Context, string) ([]store.Material, error) {
	return f.materials, f.err
}

func TestMaterialsHandler_List(t *testing.T) {
	h := NewMaterialsHandler(&fakeLister{materials: []store.Material{
		{ReadableName: "notes.pdf", S3Path: "bio200/notes.pdf"},
	}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/materials?course_name=bio200", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "notes.pdf")
}

func TestMaterialsHandler_RequiresProject(t *testing.T) {
	h := NewMaterialsHandler(&fakeLister{}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/materials", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMaterialsHandler_EmptyListIsArray(t *testing.T) {
	h := NewMaterialsHandler(&fakeLister{}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/materials?course_name=bio200", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestMaterialsHandler_StoreError(t *testing.T) {
	h := NewMaterialsHandler(&fakeLister{err: errors.New("database down")}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/materials?course_name=bio200", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
