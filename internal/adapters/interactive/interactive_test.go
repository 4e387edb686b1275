package interactive

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
)

func TestCreateFuzzySearchFunc(t *testing.T) {
	items := []string{"mainnet", "sepolia", "goerli", "polygon-amoy"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("SEP", 1))
	assert.True(t, search("gr", 2))
	assert.True(t, search("pam", 3))
	assert.False(t, search("xyz", 0))
}

func TestPromptError(t *testing.T) {
	assert.ErrorIs(t, promptError(promptui.ErrInterrupt), domain.ErrAborted)
	assert.ErrorIs(t, promptError(promptui.ErrEOF), domain.ErrAborted)

	other := errors.New("tty unavailable")
	assert.Equal(t, other, promptError(other))
}

func TestSelectNetwork_SingleOption(t *testing.T) {
	name, err := NewNetworkSelector().SelectNetwork([]string{"sepolia"})
	assert.NoError(t, err)
	assert.Equal(t, "sepolia", name)

	_, err = NewNetworkSelector().SelectNetwork(nil)
	assert.Error(t, err)
}
