package optifine_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxforge/launcher-core/src/loader/optifine"
)

const downloadsPageFixture = `<html><body>
<table>
<tr><td><a href="/adloadx?f=OptiFine_1.20.1_HD_U_I6.jar">download</a></td></tr>
<tr><td><a href="/adloadx?f=OptiFine_1.20.1_HD_U_I6.jar">Mirror</a></td></tr>
<tr><td><a href="/adloadx?f=OptiFine_1.19.2_HD_U_H9.jar">Mirror</a></td></tr>
</table>
</body></html>`

const adloadxPageFixture = `<html><body>
<a href="javascript:void(0)">noise</a>
<a href="downloadx?f=OptiFine_1.20.1_HD_U_I6.jar&x=12345">Download</a>
</body></html>`

func TestFindMirrorLink_PicksMirrorAnchorMatchingVersion(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(downloadsPageFixture))
	require.NoError(t, err)

	href, err := optifine.FindMirrorLink(doc, "1.20.1")
	require.NoError(t, err)
	assert.Equal(t, "https://optifine.net/adloadx?f=OptiFine_1.20.1_HD_U_I6.jar", href)
}

func TestFindMirrorLink_NoMatchErrors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(downloadsPageFixture))
	require.NoError(t, err)

	_, err = optifine.FindMirrorLink(doc, "1.99.9")
	assert.Error(t, err)
}

func TestFindDownloadLink_ExtractsFAndX(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(adloadxPageFixture))
	require.NoError(t, err)

	jarName, downloadURL, err := optifine.FindDownloadLink(doc)
	require.NoError(t, err)
	assert.Equal(t, "OptiFine_1.20.1_HD_U_I6.jar", jarName)
	assert.Equal(t, "https://optifine.net/downloadx?f=OptiFine_1.20.1_HD_U_I6.jar&x=12345", downloadURL)
}
