package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedPrompt(answers ...string) promptFunc {
	return func(string) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func noEnv(string) string { return "" }

func TestPassphraseReader_EnvWins(t *testing.T) {
	r := passphraseReader{
		getenv: func(key string) string {
			if key == PassphraseEnvVar {
				return "from-env"
			}
			return ""
		},
		prompt: scriptedPrompt(),
	}

	got, err := r.read("p: ")
	require.NoError(t, err)
	assert.Equal(t, "from-env", string(got))

	got, err = r.readConfirmed("p: ", "c: ")
	require.NoError(t, err)
	assert.Equal(t, "from-env", string(got))
}

func TestPassphraseReader_Prompt(t *testing.T) {
	r := passphraseReader{getenv: noEnv, prompt: scriptedPrompt("typed")}

	got, err := r.read("p: ")
	require.NoError(t, err)
	assert.Equal(t, "typed", string(got))
}

func TestPassphraseReader_Confirm(t *testing.T) {
	r := passphraseReader{getenv: noEnv, prompt: scriptedPrompt("same", "same")}
	got, err := r.readConfirmed("p: ", "c: ")
	require.NoError(t, err)
	assert.Equal(t, "same", string(got))

	r = passphraseReader{getenv: noEnv, prompt: scriptedPrompt("one", "two")}
	_, err = r.readConfirmed("p: ", "c: ")
	assert.ErrorIs(t, err, errPassphraseMismatch)

	r = passphraseReader{getenv: noEnv, prompt: scriptedPrompt("only")}
	_, err = r.readConfirmed("p: ", "c: ")
	assert.Error(t, err)
}
