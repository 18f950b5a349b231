package models

// textSampleSize bounds how much of a file the classifier inspects.
const textSampleSize = 1024

// textThreshold is the maximum fraction of non-conforming bytes in the
// sample for content to still count as text.
const textThreshold = 0.05

// IsTextContent reports whether a byte buffer looks like text. It
// samples up to 1 KiB and counts bytes outside tab, LF, CR, printable
// ASCII and the 128-255 range. An empty buffer is text.
func IsTextContent(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textSampleSize {
		sample = sample[:textSampleSize]
	}

	suspicious := 0
	for _, b := range sample {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
		case b >= 32 && b <= 126:
		case b >= 128:
		default:
			suspicious++
		}
	}

	return float64(suspicious)/float64(len(sample)) < textThreshold
}
