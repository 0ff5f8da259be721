package publications

import "strings"

// LabelPublication is attached to every publication page.
const LabelPublication = "erc-publication"

var labelReplacer = strings.NewReplacer(" ", "-", ",", "", ".", "")

// Labels returns the labels of a record, without duplicates, in a fixed order.
func Labels(rec Record) []string {
	candidates := []struct {
		prefix string
		value  string
	}{
		{"thecb-id-", rec.THECBNumber},
		{"pub-erc-", rec.PublishingERC},
		{"topic-", rec.Topic},
		{"topic-", rec.ResearchArea},
		{"type-", rec.Type},
	}

	labels := []string{LabelPublication}
	seen := map[string]bool{LabelPublication: true}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		label := c.prefix + labelReplacer.Replace(c.value)
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
