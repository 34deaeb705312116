package catalog

func toVenueSummaries(venues []Venue) []VenueSummaryResponse {
	summaries := make([]VenueSummaryResponse, len(venues))
	for i, venue := range venues {
		summaries[i] = VenueSummaryResponse{
			ID:              venue.ID.String(),
			Name:            venue.Name,
			Address:         venue.Address,
			Description:     venue.Description,
			BestTime:        venue.BestTime,
			ImageURL:        venue.ImageURL,
			ExperienceCount: len(venue.Experiences),
		}
	}
	return summaries
}

func toVenueDetail(venue *Venue) VenueDetailResponse {
	experiences := make([]ExperienceResponse, len(venue.Experiences))
	for i, exp := range venue.Experiences {
		experiences[i] = toExperienceResponse(&exp)
	}
	return VenueDetailResponse{
		ID:           venue.ID.String(),
		Name:         venue.Name,
		Address:      venue.Address,
		Description:  venue.Description,
		BestTime:     venue.BestTime,
		ContactPhone: venue.ContactPhone,
		ContactEmail: venue.ContactEmail,
		ImageURL:     venue.ImageURL,
		Experiences:  experiences,
	}
}

func toExperienceResponse(exp *Experience) ExperienceResponse {
	slots := make([]TimeSlotResponse, len(exp.TimeSlots))
	for i, slot := range exp.TimeSlots {
		slots[i] = TimeSlotResponse{
			ID:        slot.ID.String(),
			Date:      slot.Date,
			Time:      slot.Time,
			Capacity:  slot.Capacity,
			Booked:    slot.Booked,
			Available: slot.Available(),
		}
	}
	return ExperienceResponse{
		ID:                 exp.ID.String(),
		VenueID:            exp.VenueID.String(),
		Name:               exp.Name,
		Category:           exp.Category,
		AdultPriceUSDCents: exp.AdultPriceUSDCents,
		ChildPriceUSDCents: exp.ChildPriceUSDCents,
		AdultPriceLKRCents: exp.AdultPriceLKRCents,
		ChildPriceLKRCents: exp.ChildPriceLKRCents,
		TimeSlots:          slots,
	}
}
