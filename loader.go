package gbufview

import "os"

// LoadCustomShader returns the shader body stored at path. When the file
// cannot be read it logs a warning and returns CustomFallbackSource, so the
// caller always gets usable text.
func LoadCustomShader(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		Logger().Warn("gbufview: custom shader unreadable, using fallback",
			"path", path, "error", err)
		return CustomFallbackSource
	}
	return string(data)
}
