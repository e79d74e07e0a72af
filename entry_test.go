package logship

import (
	"testing"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringerContent struct{}

func (stringerContent) String() string { return "stringer content" }

func TestEntryFormat(t *testing.T) {
	entry := Entry{
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 999, time.UTC),
		Title:     "request failed",
		Body:      `{"code":500}`,
	}

	assert.Equal(t, "[2024-01-02 03:04:05] request failed\n{\"code\":500}\n\n", entry.Format())
}

func TestEncodeBody(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    string
	}{
		{name: "nil", content: nil, want: ""},
		{name: "string passthrough", content: "plain text", want: "plain text"},
		{name: "bytes passthrough", content: []byte("raw bytes"), want: "raw bytes"},
		{name: "error", content: ewrap.New("it broke"), want: "it broke"},
		{name: "stringer", content: stringerContent{}, want: "stringer content"},
		{
			name: "struct as json",
			content: struct {
				URL  string `json:"url"`
				Name string `json:"name"`
			}{URL: "https://example.com/a/b", Name: "héllo"},
			want: `{"url":"https://example.com/a/b","name":"héllo"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := EncodeBody(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, body)
		})
	}

	t.Run("unserializable content", func(t *testing.T) {
		_, err := EncodeBody(make(chan int))
		assert.Error(t, err)
	})
}

func TestEncodePayload(t *testing.T) {
	t.Run("bytes are pre-serialized", func(t *testing.T) {
		payload, err := EncodePayload([]byte(`{"already":"json"}`))
		require.NoError(t, err)
		assert.Equal(t, `{"already":"json"}`, string(payload))
	})

	t.Run("structured payload keeps slashes unescaped", func(t *testing.T) {
		payload, err := EncodePayload(struct {
			File string `json:"file"`
		}{File: "/srv/app/main.go"})
		require.NoError(t, err)
		assert.Equal(t, `{"file":"/srv/app/main.go"}`, string(payload))
	})

	t.Run("unserializable payload", func(t *testing.T) {
		_, err := EncodePayload(make(chan int))
		assert.Error(t, err)
	})
}
