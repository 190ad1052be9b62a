package booking

import "airbook/pkg/airapi"

// RosterRequirements carries the offer-driven flags that shape the roster.
type RosterRequirements struct {
	IdentityDocumentsRequired bool
}

// BuildRoster converts passenger form state into order-ready records.
//
// The type/age discriminator is enforced by omission: when a form captured an
// explicit age the type field is dropped entirely, even if the form also set
// one. This tolerates upstream form bugs instead of refusing the input.
// Contact fields are attached only to the first (primary) passenger; identity
// documents only when the itinerary requires them and the passenger opted in.
func BuildRoster(forms []PassengerForm, req RosterRequirements) []airapi.Passenger {
	passengers := make([]airapi.Passenger, 0, len(forms))

	for i, form := range forms {
		p := airapi.Passenger{
			GivenName:  form.GivenName,
			FamilyName: form.FamilyName,
			BornOn:     form.BornOn,
		}

		if form.Age != nil {
			age := *form.Age
			p.Age = &age
		} else {
			p.Type = form.Type
		}

		if i == 0 {
			p.Email = form.Email
			p.PhoneNumber = form.Phone
		}

		if req.IdentityDocumentsRequired && form.ProvideDocuments && form.PassportNumber != "" {
			p.IdentityDocuments = []airapi.IdentityDocument{{
				Type:               "passport",
				UniqueIdentifier:   form.PassportNumber,
				IssuingCountryCode: form.PassportCountry,
				ExpiresOn:          form.PassportExpiry,
			}}
		}

		passengers = append(passengers, p)
	}
	return passengers
}
