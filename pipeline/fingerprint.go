package pipeline

import (
	"sort"
	"strconv"

	"github.com/KimDantic/Worklog/source"
	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies a file set together with the text configuration it
// is processed with. Location order does not matter.
func Fingerprint(locations []source.Location, textIdentity string) uint64 {
	sorted := append([]source.Location(nil), locations...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name == sorted[j].Name {
			return sorted[i].URI < sorted[j].URI
		}
		return sorted[i].Name < sorted[j].Name
	})

	digest := xxhash.New()
	for _, loc := range sorted {
		_, _ = digest.WriteString(loc.Name)
		_, _ = digest.WriteString("|")
		_, _ = digest.WriteString(loc.URI)
		_, _ = digest.WriteString("|")
		_, _ = digest.WriteString(strconv.FormatInt(loc.Size, 10))
		_, _ = digest.WriteString("|")
		_, _ = digest.WriteString(loc.Version)
		_, _ = digest.WriteString("\n")
	}
	_, _ = digest.WriteString("text:")
	_, _ = digest.WriteString(textIdentity)
	return digest.Sum64()
}
