package main

import (
	authormodel "library-api/internal/domains/author/model"
	bookmodel "library-api/internal/domains/book/model"
)

var authorList = []authormodel.CreateAuthorRequest{
	{Name: "Miguel de Cervantes", Country: "SPAIN", Email: "miguel.cervantes@gmail.com", Password: "DonQuijote123"},
	{Name: "Federico García Lorca", Country: "SPAIN", Email: "federico.garcia@gmail.com", Password: "PoetaDelAlma456"},
	{Name: "Antonio Machado", Country: "SPAIN", Email: "antonio.machado@gmail.com", Password: "CaminanteNoHayCamino789"},
	{Name: "Miguel Delibes", Country: "SPAIN", Email: "miguel.delibes@gmail.com", Password: "LosRitosDelAgua123"},
	{Name: "Benito Pérez Galdós", Country: "SPAIN", Email: "benito.galdos@gmail.com", Password: "FortunataYJacinta456"},
	{Name: "Camilo José Cela", Country: "SPAIN", Email: "camilo.cela@gmail.com", Password: "LaColmena789"},
	{Name: "Rosalía de Castro", Country: "SPAIN", Email: "rosalia.castro@gmail.com", Password: "EnLasOrillasDelSar123"},
	{Name: "Ana María Matute", Country: "SPAIN", Email: "ana.matute@gmail.com", Password: "OlvidadoReyGudú456"},
	{Name: "Pío Baroja", Country: "SPAIN", Email: "pio.baroja@gmail.com", Password: "LaVenganzaDeLaTierra789"},
	{Name: "Luis de Góngora", Country: "SPAIN", Email: "luis.gongora@gmail.com", Password: "Soledades123"},
}

type seedBook struct {
	Title     string
	Pages     int
	Publisher string
}

var bookList = []seedBook{
	{"Don Quijote de la Mancha", 863, "Editorial Castalia"},
	{"Cien años de soledad", 471, "Editorial Sudamericana"},
	{"La sombra del viento", 545, "Editorial Planeta"},
	{"La Regenta", 951, "Editorial Anaya"},
	{"El laberinto de las aceitunas", 289, "Editorial Alfaguara"},
	{"Los detectives salvajes", 672, "Editorial Tusquets"},
	{"La Casa de Bernarda Alba", 112, "Editorial Espasa Calpe"},
	{"Niebla", 192, "Editorial Aguilar"},
	{"El amor en los tiempos del cólera", 368, "Editorial Debolsillo"},
	{"Nada", 215, "Editorial Seix Barral"},
}

func (b seedBook) request() *bookmodel.CreateBookRequest {
	pages := b.Pages
	name := b.Publisher
	country := "SPAIN"
	return &bookmodel.CreateBookRequest{
		Title:     b.Title,
		Pages:     &pages,
		Publisher: &bookmodel.PublisherInput{Name: &name, Country: &country},
	}
}
