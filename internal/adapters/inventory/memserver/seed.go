package memserver

import "github.com/bnema/invscan/internal/domain"

// Seed loads a small demo inventory and an open cycle-count session "demo".
func (s *Server) Seed() {
	for _, item := range []domain.Item{
		{ID: 1, Name: "Canon EOS R6", Category: "Kameras", FolderName: "Medienraum", Location: "Schrank A1", Condition: "gut"},
		{ID: 2, Name: "Rode NTG4+", Category: "Audio", FolderName: "Medienraum", Location: "Schrank A2", Condition: "gut"},
		{ID: 3, Name: "Manfrotto Stativ", Category: "Zubehör", FolderName: "Lager", Location: "Regal B1", Condition: "gebraucht"},
		{ID: 42, Name: "Epson Beamer", Category: "Präsentation", FolderName: "Lager", Location: "Regal B2", Condition: "gut"},
		{ID: 123, Name: "Laptop Pool 7", Category: "IT", FolderName: "Ausleihe", Location: "Wagen 1", Condition: "gut", QRCode: "LAB-KIT-A"},
	} {
		s.AddItem(item)
	}
	s.OpenSession("demo", "Demo Inventur")
}
