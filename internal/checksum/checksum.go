package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"job104-crawler/internal/scraper"
)

// RecordHash fingerprints a job record for the run archive.
// Formula: SHA256(title|link|company|location|experience|salary_text|low|high)
func RecordHash(r scraper.JobRecord) string {
	content := strings.Join([]string{
		r.Title,
		r.Link,
		r.Company,
		r.Location,
		r.Experience,
		r.SalaryText,
		strconv.Itoa(r.SalaryLow),
		strconv.Itoa(r.SalaryHigh),
	}, "|")

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// VerifyRecordHash reports whether expectedHash matches r.
func VerifyRecordHash(expectedHash string, r scraper.JobRecord) bool {
	return RecordHash(r) == expectedHash
}
