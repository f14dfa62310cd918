// Package main provides localization for the tapestudio CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Spanish translations for CLI messages and summary labels.
	l10n.Register("es", l10n.LexiconMap{
		// Root command
		"Tape and strap product configurator: procedural textures, uploads and material policy.": "Configurador de cintas y flejes: texturas procedurales, imágenes subidas y política de materiales.",

		// Command output
		"tapestudio version %s": "tapestudio versión %s",
		"Wrote %s (%dx%d)":      "Escrito %s (%dx%d)",
		"ok":                    "ok",
		"failed: %s":            "falló: %s",

		// Table headers
		"MATERIAL\tCOLOR\tTRANSMISSION\tROUGHNESS\tOPACITY": "MATERIAL\tCOLOR\tTRANSMISIÓN\tRUGOSIDAD\tOPACIDAD",
		"TYPE\tNAME\tMATERIALS\tUPLOAD\tTEXT":               "TIPO\tNOMBRE\tMATERIALES\tIMAGEN\tTEXTO",
		"PRODUCT\tNAME\tTYPE\tMATERIAL\tPRICE":              "PRODUCTO\tNOMBRE\tTIPO\tMATERIAL\tPRECIO",

		// Summary
		"Tape Configuration": "Configuración de la cinta",
		"Product":            "Producto",
		"Product Type":       "Tipo de producto",
		"Preset":             "Predefinido",
		"Price":              "Precio",
		"Geometry":           "Geometría",
		"Color":              "Color",
		"Transmission":       "Transmisión",
		"Roughness":          "Rugosidad",
		"Opacity":            "Opacidad",
		"Selection":          "Selección",
		"Custom Text":        "Texto personalizado",
		"Uploaded Image":     "Imagen subida",
		"Background":         "Fondo",
		"Textures":           "Texturas",
		"Surface Map":        "Mapa de superficie",
		"Core":               "Núcleo",
		"Session":            "Sesión",
		"Transitions":        "Transiciones",
		"Cached Textures":    "Texturas en caché",
		"Item":               "Elemento",
		"Value":              "Valor",
		"None":               "Ninguno",
		"Yes":                "Sí",
		"No":                 "No",
		"repeat":             "repetición",
		"Generated at":       "Generado el",
	})
}
