package seeders

type departmentSeed struct {
	Name string
}

type contactSeed struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Department string
}

var departmentsData = []departmentSeed{
	{Name: "Sales"},
	{Name: "Support"},
	{Name: "Бухгалтерия"},
}

var contactsData = []contactSeed{
	{FirstName: "Angelica", LastName: "Edlund", Email: "angelicaedlund@engadget.com", Phone: "+1 555 0100", Department: "Sales"},
	{FirstName: "Boris", LastName: "Axelsson", Email: "boris.axelsson@example.com", Department: "Support"},
	{FirstName: "Dana", LastName: "Zimmer", Email: "dana.zimmer@example.com", Phone: "+49 30 1234567"},
	{FirstName: "Зарина", LastName: "Каримова", Email: "zarina.karimova@example.com", Department: "Бухгалтерия"},
}
