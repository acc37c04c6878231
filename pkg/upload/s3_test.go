package upload

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), "")
	assert.Error(t, err)
}

func TestPutRequiresName(t *testing.T) {
	u := &Uploader{bucket: "b"}
	_, err := u.Put(context.Background(), "", []byte("{}"))
	assert.Error(t, err)
}
