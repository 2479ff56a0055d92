package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerMap_Value(t *testing.T) {
	t.Run("nil map serializes as empty object", func(t *testing.T) {
		var m AnswerMap
		v, err := m.Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", v)
	})

	t.Run("round trip", func(t *testing.T) {
		m := AnswerMap{"q1": "Mars", "q2": "True"}
		v, err := m.Value()
		require.NoError(t, err)

		var out AnswerMap
		require.NoError(t, out.Scan(v))
		assert.Equal(t, m, out)
	})
}

func TestAnswerMap_Scan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  AnswerMap
	}{
		{"valid json bytes", []byte(`{"q1":"Mars"}`), AnswerMap{"q1": "Mars"}},
		{"valid json string", `{"q1":"Mars"}`, AnswerMap{"q1": "Mars"}},
		{"null column", nil, AnswerMap{}},
		{"empty string", "", AnswerMap{}},
		{"json null literal", "null", AnswerMap{}},
		{"malformed json becomes empty map", []byte(`{"q1":`), AnswerMap{}},
		{"wrong value types become empty map", []byte(`{"q1":42}`), AnswerMap{}},
		{"array instead of object becomes empty map", []byte(`["a","b"]`), AnswerMap{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m AnswerMap
			require.NoError(t, m.Scan(tt.input))
			assert.Equal(t, tt.want, m)
		})
	}

	t.Run("unsupported driver type is an error", func(t *testing.T) {
		var m AnswerMap
		assert.Error(t, m.Scan(42))
	})
}

func TestCheckMap_Scan(t *testing.T) {
	t.Run("valid entries", func(t *testing.T) {
		var m CheckMap
		require.NoError(t, m.Scan([]byte(`{"q1":{"correctAnswerText":"Mars","isCorrect":true}}`)))
		assert.Equal(t, CheckMap{"q1": {CorrectAnswerText: "Mars", IsCorrect: true}}, m)
	})

	t.Run("needsReview survives the round trip", func(t *testing.T) {
		m := CheckMap{"q1": {CorrectAnswerText: "", IsCorrect: false, NeedsReview: true}}
		v, err := m.Value()
		require.NoError(t, err)

		var out CheckMap
		require.NoError(t, out.Scan(v))
		assert.True(t, out["q1"].NeedsReview)
	})

	t.Run("malformed json becomes empty map", func(t *testing.T) {
		var m CheckMap
		require.NoError(t, m.Scan([]byte(`not json at all`)))
		assert.Equal(t, CheckMap{}, m)
	})
}
