package configs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedConfigsAreJSON(t *testing.T) {
	for _, env := range []string{EnvDevelopment, EnvTesting} {
		t.Run(env, func(t *testing.T) {
			data, err := Get(env)
			require.NoError(t, err)
			var v map[string]interface{}
			assert.NoError(t, json.Unmarshal(data, &v))
			assert.Contains(t, v, "app_name")
		})
	}

	_, err := Get("staging")
	assert.Error(t, err)
}
