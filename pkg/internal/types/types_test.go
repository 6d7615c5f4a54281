package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/types"
)

func TestParentRefUnmarshal(t *testing.T) {
	cases := map[string]string{
		`{}`:                    model.RootParentID,
		`{"parentId":0}`:        model.RootParentID,
		`{"parentId":"0"}`:      model.RootParentID,
		`{"parentId":""}`:       model.RootParentID,
		`{"parentId":null}`:     model.RootParentID,
		`{"parentId":"abc123"}`: "abc123",
	}

	for body, want := range cases {
		var req types.CreateFileRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, req.Input().ParentID, body)
	}
}

func TestFileResponseParentEncoding(t *testing.T) {
	f := &model.File{ID: model.NewID(), UserID: "u1", Name: "docs", Type: model.FileTypeFolder, ParentID: model.RootParentID}

	b, err := json.Marshal(types.NewFileResponse(f))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"parentId":0`)
	assert.NotContains(t, string(b), "localPath")

	child := &model.File{ID: model.NewID(), Name: "a.txt", Type: model.FileTypeFile, ParentID: f.ID.String()}
	b, err = json.Marshal(types.NewFileResponse(child))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"parentId":"`+f.ID.String()+`"`)
}

func TestNewFileListResponseEmpty(t *testing.T) {
	b, err := json.Marshal(types.NewFileListResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestCreateFileRequestNonStringFields(t *testing.T) {
	cases := map[string]model.CreateInput{
		`{"name":7,"type":"folder"}`:                            {Type: model.FileTypeFolder, ParentID: model.RootParentID},
		`{"name":"x","type":5}`:                                 {Name: "x", ParentID: model.RootParentID},
		`{"name":"x","type":"file","data":{},"isPublic":"yes"}`: {Name: "x", Type: model.FileTypeFile, ParentID: model.RootParentID},
		`{"name":"x","type":"image","data":"aGk=","isPublic":true}`: {
			Name: "x", Type: model.FileTypeImage, ParentID: model.RootParentID, IsPublic: true, Data: "aGk=",
		},
	}

	for body, want := range cases {
		var req types.CreateFileRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, req.Input(), body)
	}

	var req types.CreateFileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"parentId":true}`), &req))
	_, err := model.ParseID(req.Input().ParentID)
	assert.Error(t, err)
}
