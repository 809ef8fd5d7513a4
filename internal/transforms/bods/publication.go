package bods

import "github.com/openownership/boexplorer/internal/core/domain"

// BODS schema version emitted by this transformer.
const Version = "0.4"

func publicationDetails() domain.PublicationDetails {
	return domain.PublicationDetails{
		PublicationDate: CurrentDate(),
		BodsVersion:     Version,
		License:         "https://creativecommons.org/publicdomain/zero/1.0/",
		Publisher: domain.Publisher{
			Name: "Open Ownership",
			URL:  "https://www.openownership.org",
		},
	}
}

// annotate appends a commenting annotation when the adapter supplied one.
func annotate(annotations []domain.Annotation, text domain.AnnotationText) []domain.Annotation {
	if text.Description == "" {
		return annotations
	}
	return append(annotations, domain.Annotation{
		Motivation:             "commenting",
		Description:            text.Description,
		StatementPointerTarget: text.Pointer,
		CreationDate:           CurrentDate(),
		CreatedBy: domain.Agent{
			Name: "Open Ownership",
			URI:  "https://www.openownership.org",
		},
	})
}
