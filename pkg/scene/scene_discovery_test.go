package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"torus-chain", "Torus Chain"},
		{"mirror_room", "Mirror Room"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete.json",
			content: `{"name": "Donut Shop", "description": "Three tori", "group": "Tori", "entities": []}`,
			expected: SceneInfo{
				ID:          "json:complete",
				Name:        "Donut Shop",
				DisplayName: "Donut Shop",
				Description: "Three tori",
				Group:       "Tori",
				Type:        "json",
			},
		},
		{
			name:    "no-metadata.json",
			content: `{"entities": []}`,
			expected: SceneInfo{
				ID:          "json:no-metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "Scene Files",
				Type:        "json",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("Failed to write test file: %v", err)
			}

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata failed: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("Got %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := ParseSceneMetadata(path); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b-scene.json": `{"name": "Beta", "group": "Extra"}`,
		"a-scene.json": `{"name": "Alpha", "group": "Extra"}`,
		"broken.json":  `{`,
		"notes.txt":    `ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Name != builtInGroup {
		t.Errorf("Expected built-in group first, got %q", response.Groups[0].Name)
	}
	if len(response.Groups[0].Scenes) != len(builtInScenes) {
		t.Errorf("Expected %d built-in scenes, got %d", len(builtInScenes), len(response.Groups[0].Scenes))
	}

	extra := response.Groups[1]
	if extra.Name != "Extra" || len(extra.Scenes) != 2 {
		t.Fatalf("Unexpected file group: %+v", extra)
	}
	if extra.Scenes[0].Name != "Alpha" || extra.Scenes[1].Name != "Beta" {
		t.Errorf("Expected scenes sorted by display name, got %q, %q", extra.Scenes[0].Name, extra.Scenes[1].Name)
	}
}

func TestBuiltinScenesAreListed(t *testing.T) {
	for _, info := range builtInScenes {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltinScene(info.ID)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) failed: %v", info.ID, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Built-in scene %q is invalid: %v", info.ID, err)
			}
			if len(s.Entities) == 0 || len(s.Lights) == 0 {
				t.Errorf("Built-in scene %q has %d entities and %d lights", info.ID, len(s.Entities), len(s.Lights))
			}
		})
	}

	if _, err := NewBuiltinScene("cornell-box"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}
