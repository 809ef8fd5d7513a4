package bods

import (
	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/jurisdictions"
)

// Entity shapes one raw company item into a BODS entity statement. Mapping
// accessors that find nothing leave their fields zero; the statement is
// still produced so a thin registry listing yields a thin statement.
func Entity(a driven.Adapter, data domain.RawItem) domain.Statement {
	item := a.ExtractItem(data)
	recordID := a.RecordID(data)
	updateDate := a.UpdateDate(data)
	code := a.Jurisdiction(item)

	identifiers := []domain.Identifier{{
		ID:         a.Identifier(data),
		Scheme:     a.Scheme(),
		SchemeName: a.SchemeName(),
	}}
	identifiers = append(identifiers, a.AdditionalIdentifiers(item)...)

	addresses := []domain.Address{}
	if registered, ok := a.RegisteredAddress(item); ok {
		if addr, ok := formatAddress(domain.AddressRegistered, registered, a); ok {
			addresses = append(addresses, addr)
		}
	}
	if business, ok := a.BusinessAddress(item); ok {
		if addr, ok := formatAddress(domain.AddressBusiness, business, a); ok {
			addresses = append(addresses, addr)
		}
	}

	return domain.Statement{
		StatementID:        StatementID(a.Identifier(data)+"_"+updateDate, roleEntity, ""),
		DeclarationSubject: recordID,
		StatementDate:      FormatDate(updateDate),
		RecordID:           recordID,
		RecordStatus:       "new",
		RecordType:         domain.RecordEntity,
		RecordDetails: domain.RecordDetails{
			IsComponent:    false,
			EntityType:     &domain.EntityType{Type: "registeredEntity"},
			Name:           a.EntityName(item),
			AlternateNames: []string{},
			Jurisdiction: &domain.Jurisdiction{
				Name: jurisdictions.Name(code),
				Code: code,
			},
			Identifiers:  identifiers,
			FoundingDate: a.CreationDate(item),
			Addresses:    addresses,
		},
		Annotations:        annotate([]domain.Annotation{}, a.Annotation(data)),
		PublicationDetails: publicationDetails(),
		Source: domain.Source{
			Type:        a.SourceType(data),
			Description: a.SourceDescription(),
		},
	}
}

// Person shapes one raw person item into a BODS person statement. Owners a
// registry discloses without naming become unknownPerson records with no
// identifying details.
func Person(a driven.Adapter, pm driven.PersonMapper, data domain.RawItem) domain.Statement {
	item := pm.ExtractPersonItem(data)
	recordID := pm.PersonRecordID(data)
	updateDate := pm.PersonUpdateDate(data)
	unspecified := pm.Unspecified(item)

	personType := domain.PersonKnown
	names := []domain.Name{}
	identifiers := []domain.Identifier{}
	addresses := []domain.Address{}
	birthDate := ""
	taxResidencies := []string{}
	if unspecified {
		personType = domain.PersonUnspecified
	} else {
		if name, ok := formatName("legal", pm.PersonName(data)); ok {
			names = append(names, name)
		}
		identifiers = append(identifiers, domain.Identifier{
			ID:         pm.PersonIdentifier(data),
			Scheme:     a.Scheme(),
			SchemeName: a.SchemeName(),
		})
		if address, ok := pm.PersonAddress(item); ok {
			if addr, ok := formatAddress(domain.AddressResidence, address, a); ok {
				addresses = append(addresses, addr)
			}
		}
		birthDate = pm.PersonBirthDate(item)
		if residency := pm.PersonTaxResidency(item); residency != "" {
			taxResidencies = append(taxResidencies, residency)
		}
	}

	return domain.Statement{
		StatementID:        StatementID(pm.PersonIdentifier(data)+"_"+updateDate, rolePerson, ""),
		DeclarationSubject: recordID,
		StatementDate:      FormatDate(updateDate),
		RecordID:           recordID,
		RecordStatus:       "new",
		RecordType:         domain.RecordPerson,
		RecordDetails: domain.RecordDetails{
			IsComponent:    false,
			PersonType:     personType,
			Names:          names,
			Identifiers:    identifiers,
			BirthDate:      birthDate,
			TaxResidencies: taxResidencies,
			Addresses:      addresses,
		},
		Annotations:        annotate([]domain.Annotation{}, pm.PersonAnnotation(data)),
		PublicationDetails: publicationDetails(),
		Source: domain.Source{
			Type:        a.SourceType(data),
			Description: a.SourceDescription(),
		},
	}
}

func formatAddress(addrType string, addr domain.RawItem, a driven.Adapter) (domain.Address, bool) {
	line := a.AddressString(addr)
	if line == "" {
		return domain.Address{}, false
	}
	return domain.Address{
		Type:     addrType,
		Address:  line,
		Country:  a.AddressCountry(addr),
		PostCode: a.AddressPostcode(addr),
	}, true
}

func formatName(nameType string, c domain.NameComponents) (domain.Name, bool) {
	if c.FullName == "" && c.FamilyName == "" && c.GivenName == "" {
		return domain.Name{}, false
	}
	return domain.Name{
		Type:           nameType,
		FullName:       c.FullName,
		GivenName:      c.GivenName,
		FamilyName:     c.FamilyName,
		PatronymicName: c.Patronymic,
	}, true
}
