package core_test

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"modroller/internal/core"
	"modroller/internal/domain"
	"modroller/internal/storage/config"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weaponsXML = `<Weapons>
   <Weapon id="1">
      <Damage>10</Damage>
   </Weapon>
</Weapons>`

type fixture struct {
	gameDir  string
	dataRoot string
	repoDir  string
	service  *core.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		gameDir: filepath.Join(dir, "game"),
		repoDir: filepath.Join(dir, "mods"),
	}
	f.dataRoot = filepath.Join(f.gameDir, "Data")
	require.NoError(t, os.MkdirAll(f.dataRoot, 0755))
	require.NoError(t, os.MkdirAll(f.repoDir, 0755))

	cfg := &config.Config{GameDir: f.gameDir, ModRepoDir: f.repoDir}
	svc, err := core.NewService(cfg, log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	f.service = svc
	return f
}

// addMod writes a mod directory with the given descriptor and extra files.
func (f *fixture) addMod(t *testing.T, dirName string, desc domain.Descriptor, files map[string]string) {
	t.Helper()
	modDir := filepath.Join(f.repoDir, dirName)
	require.NoError(t, os.MkdirAll(modDir, 0755))

	data, err := json.Marshal(desc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "mod.json"), data, 0644))

	for name, content := range files {
		path := filepath.Join(modDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func (f *fixture) writeData(t *testing.T, relPath, content string) {
	t.Helper()
	path := filepath.Join(f.dataRoot, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (f *fixture) readData(t *testing.T, relPath string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dataRoot, relPath))
	require.NoError(t, err)
	return string(data)
}

func TestService_FileReplacementRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.writeData(t, "sub/fileA.txt", "original")
	f.addMod(t, "file-mod", domain.Descriptor{
		Name:        "File Mod",
		Description: "replaces fileA",
		Files:       map[string]string{"fileA.txt": "sub"},
	}, map[string]string{"fileA.txt": "X"})

	require.NoError(t, f.service.Install("file-mod"))
	assert.Equal(t, "X", f.readData(t, "sub/fileA.txt"))

	backupFile := filepath.Join(f.gameDir, "Modroller", "backup", "sub", "fileA.txt")
	backed, err := os.ReadFile(backupFile)
	require.NoError(t, err)
	assert.Equal(t, "original", string(backed))

	warnings, err := f.service.Uninstall("file-mod")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "original", f.readData(t, "sub/fileA.txt"))

	// Backup stays in place after uninstall.
	backed, err = os.ReadFile(backupFile)
	require.NoError(t, err)
	assert.Equal(t, "original", string(backed))
}

func TestService_XMLPatchRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.writeData(t, "weapons.xml", weaponsXML)
	f.addMod(t, "xml-mod", domain.Descriptor{
		Name:        "XML Mod",
		Description: "boosts damage",
		XML: map[string]map[string]string{
			"weapons.xml": {"//Weapon[@id='1']/Damage": "damage.xml"},
		},
	}, map[string]string{"damage.xml": `<Damage>99</Damage>`})

	require.NoError(t, f.service.Install("xml-mod"))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(filepath.Join(f.dataRoot, "weapons.xml")))
	el := doc.FindElement("//Weapon[@id='1']/Damage")
	require.NotNil(t, el)
	assert.Equal(t, "99", el.Text())

	warnings, err := f.service.Uninstall("xml-mod")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	doc = etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(filepath.Join(f.dataRoot, "weapons.xml")))
	el = doc.FindElement("//Weapon[@id='1']/Damage")
	require.NotNil(t, el)
	assert.Equal(t, "10", el.Text())
}

func TestService_InstallUpdatesRecord(t *testing.T) {
	f := newFixture(t)
	f.addMod(t, "simple", domain.Descriptor{Name: "Simple", Description: "d"}, nil)

	require.NoError(t, f.service.Install("simple"))
	assert.Equal(t, []string{"simple"}, f.service.InstalledMods())

	// The record is persisted, not just in memory.
	data, err := os.ReadFile(filepath.Join(f.gameDir, "Modroller", "installed.json"))
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal(data, &names))
	assert.Equal(t, []string{"simple"}, names)

	mods, err := f.service.ListMods()
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.True(t, mods[0].Installed)

	_, err = f.service.Uninstall("simple")
	require.NoError(t, err)
	assert.Empty(t, f.service.InstalledMods())
}

func TestService_InstallTwiceFails(t *testing.T) {
	f := newFixture(t)
	f.addMod(t, "simple", domain.Descriptor{Name: "Simple", Description: "d"}, nil)

	require.NoError(t, f.service.Install("simple"))
	assert.ErrorIs(t, f.service.Install("simple"), domain.ErrAlreadyInstalled)
}

func TestService_UninstallNotInstalledFails(t *testing.T) {
	f := newFixture(t)
	f.addMod(t, "simple", domain.Descriptor{Name: "Simple", Description: "d"}, nil)

	_, err := f.service.Uninstall("simple")
	assert.ErrorIs(t, err, domain.ErrModNotInstalled)
}

func TestService_InstallUnknownModFails(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.service.Install("ghost"), domain.ErrModNotFound)
}

func TestService_MissingXMLTargetIsFatal(t *testing.T) {
	f := newFixture(t)
	f.addMod(t, "xml-mod", domain.Descriptor{
		Name:        "XML Mod",
		Description: "targets a file this game version does not have",
		XML: map[string]map[string]string{
			"missing.xml": {"//Thing": "frag.xml"},
		},
	}, map[string]string{"frag.xml": `<Thing/>`})

	err := f.service.Install("xml-mod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.xml")
	assert.Empty(t, f.service.InstalledMods(), "failed install must not be recorded")
}

func TestService_PartialFailureKeepsAppliedSteps(t *testing.T) {
	f := newFixture(t)
	f.writeData(t, "sub/fileA.txt", "original")
	// File replacement succeeds, then the XML step fails on a missing target.
	f.addMod(t, "half", domain.Descriptor{
		Name:        "Half",
		Description: "fails partway",
		Files:       map[string]string{"fileA.txt": "sub"},
		XML: map[string]map[string]string{
			"missing.xml": {"//Thing": "frag.xml"},
		},
	}, map[string]string{"fileA.txt": "X", "frag.xml": `<Thing/>`})

	err := f.service.Install("half")
	require.Error(t, err)

	// No rollback: the replaced file stays replaced, the backup preserves
	// the original for a manual uninstall.
	assert.Equal(t, "X", f.readData(t, "sub/fileA.txt"))
	backed, err := os.ReadFile(filepath.Join(f.gameDir, "Modroller", "backup", "sub", "fileA.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(backed))
	assert.Empty(t, f.service.InstalledMods())
}

func TestService_UninstallModAddedFileWarns(t *testing.T) {
	f := newFixture(t)
	// fresh.txt has no stock counterpart, so install creates no backup.
	f.addMod(t, "adder", domain.Descriptor{
		Name:        "Adder",
		Description: "adds a file",
		Files:       map[string]string{"fresh.txt": "sub"},
	}, map[string]string{"fresh.txt": "new"})

	require.NoError(t, f.service.Install("adder"))

	warnings, err := f.service.Uninstall("adder")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "file", warnings[0].Step)

	// The mod-added file is left in place; uninstall never deletes.
	assert.Equal(t, "new", f.readData(t, "sub/fresh.txt"))
	assert.Empty(t, f.service.InstalledMods())
}

func TestService_Overlaps(t *testing.T) {
	f := newFixture(t)
	f.writeData(t, "sub/shared.txt", "stock")
	f.addMod(t, "mod-a", domain.Descriptor{
		Name: "A", Description: "d",
		Files: map[string]string{"shared.txt": "sub"},
	}, map[string]string{"shared.txt": "a"})
	f.addMod(t, "mod-b", domain.Descriptor{
		Name: "B", Description: "d",
		Files: map[string]string{"shared.txt": "sub"},
	}, map[string]string{"shared.txt": "b"})

	require.NoError(t, f.service.Install("mod-a"))
	require.NoError(t, f.service.Install("mod-b"))

	overlaps, err := f.service.Overlaps("mod-a")
	require.NoError(t, err)
	require.Len(t, overlaps, 1)
	assert.Equal(t, filepath.Join("sub", "shared.txt"), overlaps[0].RelativePath)
	assert.Equal(t, "mod-b", overlaps[0].OtherMod)
}
