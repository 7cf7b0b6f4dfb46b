package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhangzhonghe/apitable/binder"
)

func TestPath(t *testing.T) {
	t.Parallel()

	type request struct {
		SuiteID  string `path:"suiteID"`
		CorpID   string `path:"corpID"`
		AgentID  int64  `path:"agentID"`
		Page     *uint  `path:"page"`
		Internal string `path:"-"`
		Body     string
	}

	params := map[string]string{
		"suiteID":  "ww-suite",
		"corpID":   "wx-corp",
		"agentID":  "1000001",
		"page":     "2",
		"Internal": "nope",
		"Body":     "nope",
	}
	extractor := func(_ *http.Request, name string) string { return params[name] }

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.Path(extractor)(httptest.NewRequest(http.MethodGet, "/", nil), &req)
		require.NoError(t, err)
		assert.Equal(t, "ww-suite", req.SuiteID)
		assert.Equal(t, "wx-corp", req.CorpID)
		assert.Equal(t, int64(1000001), req.AgentID)
		require.NotNil(t, req.Page)
		assert.Equal(t, uint(2), *req.Page)
		assert.Empty(t, req.Internal)
		assert.Empty(t, req.Body)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		bad := func(_ *http.Request, name string) string {
			if name == "agentID" {
				return "abc"
			}
			return ""
		}
		var req request
		err := binder.Path(bad)(httptest.NewRequest(http.MethodGet, "/", nil), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
	})

	t.Run("nil extractor", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		err := binder.Path(extractor)(httptest.NewRequest(http.MethodGet, "/", nil), request{})
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type request struct {
		Fetch *bool  `json:"fetch_edition_info"`
		Name  string `json:"name"`
	}

	newRequest := func(body, contentType string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"fetch_edition_info":false,"name":"x"}`, "application/json; charset=utf-8"), &req)
		require.NoError(t, err)
		require.NotNil(t, req.Fetch)
		assert.False(t, *req.Fetch)
		assert.Equal(t, "x", req.Name)
	})

	t.Run("empty body is not applicable", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(httptest.NewRequest(http.MethodPost, "/", nil), &req)
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)

		err = binder.JSON()(newRequest("  \n", "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{}`, ""), &req)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{}`, "text/plain"), &req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"other":1}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"name":"a"}{"name":"b"}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"name":`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}
