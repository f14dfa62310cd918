package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("es", l10n.LexiconMap{
		// Session
		"Output saved to %s":            "Salida guardada en %s",
		"Summary saved to %s":           "Resumen guardado en %s",
		"Product card saved to %s":      "Tarjeta de producto guardada en %s",
		"Interrupted, shutting down...": "Interrumpido, cerrando...",
		"Running script %s (%d steps)":  "Ejecutando guion %s (%d pasos)",
		"Script finished: %d steps":     "Guion terminado: %d pasos",

		// Selection
		"Product type: %s":           "Tipo de producto: %s",
		"Product: %s":                "Producto: %s",
		"Material: %s":               "Material: %s",
		"Custom text: %q":            "Texto personalizado: %q",
		"Ignoring blank custom text": "Se ignora el texto personalizado vacío",
		"Surface map: %s":            "Mapa de superficie: %s",
		"Core map: %dx%d":            "Mapa del núcleo: %dx%d",
		"Material %s has no table entry, using the default descriptor": "El material %s no está en la tabla, se usa el descriptor por defecto",

		// Uploads
		"Decoding upload %d (%s, %d bytes)":      "Decodificando subida %d (%s, %d bytes)",
		"Decoded %s image %dx%d":                 "Imagen %s decodificada %dx%d",
		"Applied uploaded image %dx%d":           "Imagen subida aplicada %dx%d",
		"Discarding stale upload %d (latest %d)": "Se descarta la subida obsoleta %d (última %d)",

		// Textures
		"Generated %s texture: %dx%d":                   "Textura %s generada: %dx%d",
		"Blank printed text, rendering background only": "Texto impreso vacío, solo se dibuja el fondo",
		"Composited %s: %dx%d":                          "Composición %s: %dx%d",
		"Released raster %d":                            "Ráster %d liberado",

		// Product card
		"Generating product card":       "Generando tarjeta de producto",
		"Product card generated: %dx%d": "Tarjeta de producto generada: %dx%d",

		// Warnings and errors
		"Could not decode uploaded image: %s": "No se pudo decodificar la imagen subida: %s",
		"Failed to build surface map: %s":     "No se pudo construir el mapa de superficie: %s",
		"Failed to build core map: %s":        "No se pudo construir el mapa del núcleo: %s",
		"Failed to save debug composite: %s":  "No se pudo guardar la composición de depuración: %s",
		"Failed to save debug state: %s":      "No se pudo guardar el estado de depuración: %s",
		"Failed to save debug texture: %s":    "No se pudo guardar la textura de depuración: %s",
		"Failed to save debug upload: %s":     "No se pudo guardar la subida de depuración: %s",
		"Failed to write output: %s":          "No se pudo escribir la salida: %s",
		"Unknown product type: %s":            "Tipo de producto desconocido: %s",
	})
}
