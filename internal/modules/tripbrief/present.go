// README: Normalizer turning pipeline results into display records in fixed provider order.
package tripbrief

type AttractionView struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ImagePromptText string   `json:"imagePromptText"`
	Image           ImageRef `json:"image"`
}

// DisplayRecord is one provider panel. Error is set instead of the brief fields on failure.
type DisplayRecord struct {
	Provider         ProviderID       `json:"provider"`
	OK               bool             `json:"ok"`
	Metrics          Metrics          `json:"metrics"`
	Error            string           `json:"error,omitempty"`
	Destination      string           `json:"destination,omitempty"`
	DestinationInfo  string           `json:"destinationInfo,omitempty"`
	DestinationImage ImageRef         `json:"destinationImage,omitempty"`
	KidFriendly      string           `json:"kidFriendly,omitempty"`
	BestSeason       string           `json:"bestSeason,omitempty"`
	Attractions      []AttractionView `json:"attractions,omitempty"`
}

// Present orders records by ProviderOrder regardless of completion order.
// Slots absent from results are skipped.
func Present(results Results) []DisplayRecord {
	out := make([]DisplayRecord, 0, len(results))
	for _, id := range ProviderOrder {
		r, ok := results[id]
		if !ok {
			continue
		}
		out = append(out, present(id, r))
	}
	return out
}

func present(id ProviderID, r PipelineResult) DisplayRecord {
	rec := DisplayRecord{Provider: id, OK: r.OK(), Metrics: r.Metrics}
	if !r.OK() || r.Brief == nil {
		rec.OK = false
		rec.Error = r.ErrorMessage()
		return rec
	}

	b := r.Brief
	rec.Destination = b.Destination
	rec.DestinationInfo = b.DestinationInfo
	rec.DestinationImage = r.DestinationImage
	rec.KidFriendly = b.KidFriendly
	rec.BestSeason = b.BestSeason
	rec.Attractions = make([]AttractionView, len(b.Attractions))
	for i, a := range b.Attractions {
		img := FailedImage
		if i < len(r.AttractionImages) {
			img = r.AttractionImages[i]
		}
		rec.Attractions[i] = AttractionView{
			Name:            a.Name,
			Description:     a.Description,
			ImagePromptText: a.ImagePromptText,
			Image:           img,
		}
	}
	return rec
}
