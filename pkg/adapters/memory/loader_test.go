package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/puppet/pkg/adapters/memory"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	fixtures := []domain.Clip{
		{Name: "stretch", Duration: 2 * time.Second, Tracks: []string{"spine", "arms"}},
		{Name: "point", Duration: 1500 * time.Millisecond},
	}

	ports.RunClipLoaderContract(t, memory.NewLoader(fixtures...), fixtures)
}

func TestNewFromJSON(t *testing.T) {
	loader := memory.NewFromJSON(map[string]string{
		"ko":     `{"name":"ko","duration":1200000000}`,
		"broken": `{"duration":"oops"`,
	})
	ctx := context.Background()

	clip, err := loader.Load(ctx, "ko")
	assert.NoError(t, err)
	assert.Equal(t, 1200*time.Millisecond, clip.Duration)

	_, err = loader.Load(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrClipMalformed)
}
