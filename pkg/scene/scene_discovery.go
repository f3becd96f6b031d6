package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

const builtinGroup = "Built-in Scenes"

var builtinScenes = []SceneInfo{
	{
		ID:          "parabolic-mirror",
		Name:        "Parabolic Mirror",
		Description: "Concave parabolic mirror focusing a parallel beam",
	},
	{
		ID:          "circular-mirror",
		Name:        "Circular Mirror",
		Description: "Spherical mirror focusing a parallel beam",
	},
	{
		ID:          "singlet-lens",
		Name:        "Singlet Lens",
		Description: "Symmetric biconvex lens with one shared coefficient",
	},
	{
		ID:          "landscape-lens",
		Name:        "Landscape Lens",
		Description: "Stop and meniscus lens imaging an object at infinity",
	},
}

func builtinInfo(id string) SceneInfo {
	for _, info := range ListBuiltinScenes() {
		if info.ID == id {
			return info
		}
	}
	panic(fmt.Sprintf("scene: no metadata for builtin scene %q", id))
}

// ListBuiltinScenes returns the scenes compiled into the program
func ListBuiltinScenes() []SceneInfo {
	out := make([]SceneInfo, len(builtinScenes))
	for i, info := range builtinScenes {
		info.Group = builtinGroup
		info.Type = "builtin"
		out[i] = info
	}
	return out
}

// scenesDir returns the first existing scenes directory
func scenesDir() string {
	for _, path := range []string{"scenes", "../scenes", "../../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// findSceneFile resolves a scene file name inside the scenes directory. Names
// are plain file names without extension; paths are rejected.
func findSceneFile(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid scene file name %q", name)
	}
	dir := scenesDir()
	if dir == "" {
		return "", fmt.Errorf("scene file %q: no scenes directory", name)
	}
	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("scene file %q: %w", name, err)
	}
	return path, nil
}

// ListFileScenes scans a directory for JSON scene descriptions. An empty dir
// searches the default scenes directory.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		dir = scenesDir()
	}
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, path := range files {
		cfg, err := readSceneConfig(path)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, fileInfo(path, cfg))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

func fileInfo(path string, cfg *SceneCfg) SceneInfo {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:          "file:" + base,
		Name:        cfg.Name,
		Description: cfg.Description,
		Group:       cfg.Group,
		Type:        "file",
		FilePath:    path,
	}
	if info.Name == "" {
		info.Name = titleCase(base)
	}
	if info.Group == "" {
		info.Group = "Scene Files"
	}
	return info
}

// ListAllScenes returns builtin and file scenes grouped by category, builtin first
func ListAllScenes(dir string) ([]SceneGroup, error) {
	files, err := ListFileScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(ListBuiltinScenes(), files...) {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var names []string
	for name := range groupMap {
		if name != builtinGroup {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	groups := []SceneGroup{{Name: builtinGroup, Scenes: groupMap[builtinGroup]}}
	for _, name := range names {
		groups = append(groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "double-gauss" -> "Double Gauss"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
