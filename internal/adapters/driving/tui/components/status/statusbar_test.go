package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.True(t, bar.Notice().IsZero())
	assert.Equal(t, 80, bar.Width())
}

func TestBar_Show_ExpiringNotice(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	cmd := bar.Show(domain.Notice{Kind: domain.NoticeSuccess, Text: domain.TextGenerated})

	require.NotNil(t, cmd)
	assert.Equal(t, domain.TextGenerated, bar.Notice().Text)
	assert.Contains(t, bar.View(), domain.TextGenerated)

	bar.Expire(bar.Seq())
	assert.True(t, bar.Notice().IsZero())
	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_Show_LoadingDoesNotExpire(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Show(domain.Notice{Kind: domain.NoticeLoading, Text: domain.TextGenerating})

	assert.Nil(t, cmd)
	assert.Equal(t, domain.NoticeLoading, bar.Notice().Kind)
}

func TestBar_Show_ZeroNoticeIgnored(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.Show(domain.Notice{Kind: domain.NoticeLoading, Text: domain.TextGenerating})
	seq := bar.Seq()

	cmd := bar.Show(domain.Notice{})

	assert.Nil(t, cmd)
	assert.Equal(t, seq, bar.Seq())
	assert.Equal(t, domain.TextGenerating, bar.Notice().Text)
}

func TestBar_Expire_StaleSequenceKeepsNewerNotice(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.Show(domain.Notice{Kind: domain.NoticeError, Text: domain.TextLoadFailed})
	first := bar.Seq()
	bar.Show(domain.Notice{Kind: domain.NoticeSuccess, Text: domain.TextGenerated})

	bar.Expire(first)

	assert.Equal(t, domain.TextGenerated, bar.Notice().Text)
}

func TestBar_Dismiss(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.Show(domain.Notice{Kind: domain.NoticeLoading, Text: domain.TextGenerating})

	bar.Dismiss()

	assert.True(t, bar.Notice().IsZero())
}

func TestBar_MessageAndHints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(120)
	bar.SetMessage("3 documents")
	bar.SetBindings(km.DocumentsHelp())

	view := bar.View()

	assert.Contains(t, view, "3 documents")
	assert.Contains(t, view, "generate report")
	assert.Equal(t, "3 documents", bar.Message())
}
