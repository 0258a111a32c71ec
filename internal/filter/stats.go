package filter

import (
	"fmt"
	"log"
)

// Stats are run-level counters, for reporting only
type Stats struct {
	Cards    int `json:"cards"`
	Valid    int `json:"valid"`
	Masked   int `json:"masked"`
	Missing  int `json:"missing"`
	Excluded int `json:"excluded"`
	NoURL    int `json:"noUrl"`
	Failed   int `json:"failed"`
}

func (s *Stats) Record(r Reason) {
	switch r {
	case ReasonNone:
		s.Valid++
	case ReasonMissing:
		s.Missing++
	case ReasonMasked:
		s.Masked++
	case ReasonExcluded:
		s.Excluded++
	case ReasonNoURL:
		s.NoURL++
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("cards=%d valid=%d masked=%d missing=%d excluded=%d nourl=%d failed=%d",
		s.Cards, s.Valid, s.Masked, s.Missing, s.Excluded, s.NoURL, s.Failed)
}

// Log prints the extraction summary
func (s Stats) Log() {
	log.Println("📊 Extraction Summary:")
	log.Printf("   Total cards processed: %d", s.Cards)
	log.Printf("   Valid jobs extracted: %d", s.Valid)
	log.Printf("   Skipped (masked data): %d", s.Masked)
	log.Printf("   Skipped (missing data): %d", s.Missing)
	log.Printf("   Skipped (excluded keyword): %d", s.Excluded)
	log.Printf("   Skipped (no URL): %d", s.NoURL)
	if s.Failed > 0 {
		log.Printf("   Failed (extraction error): %d", s.Failed)
	}
}
