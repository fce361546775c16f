package catalog

var defaultParts = []PartDefinition{
	{ID: "hana", AssetPath: "models/hana.glb", DisplayName: "Хана",
		Description: "Хана — Нугалж эвхэгддэг, торлог бүтэцтэй модон хийц."},
	{ID: "haalga", AssetPath: "models/haalga_o.glb", DisplayName: "Хаалга",
		Description: "Хаалга — Гэрийн орц, гарцын үндсэн хэсэг."},
	{ID: "toono", AssetPath: "models/toono.glb", DisplayName: "Тооно",
		Description: "Тооно — Гэрийн орой дээрх дугуй модон хийц."},
	{ID: "bagana", AssetPath: "models/bagana.glb", DisplayName: "Багана",
		Description: "Багана — Тооно болон гэрийг тулж барих босоо мод."},
	{ID: "uni", AssetPath: "models/uni.glb", DisplayName: "Унь",
		Description: "Унь — Тооно ба ханыг холбож дээврийн бүтэц үүсгэнэ."},
	{ID: "esgii", AssetPath: "models/esgii.glb", DisplayName: "Эсгий",
		Description: "Эсгий — Дулаалга, салхи борооноос хамгаална."},
	{ID: "burees", AssetPath: "models/burees.glb", DisplayName: "Бүрээс",
		Description: "Бүрээс — Гадна бүрхүүл, хамгаалалт."},
	{ID: "urh", AssetPath: "models/urh.glb", DisplayName: "Өрх",
		Description: "Өрх — Тооныг бүтээж гэрлийн оролтыг тохируулна."},
	{ID: "uya", AssetPath: "models/uya.glb", DisplayName: "Уяа",
		Description: "Уяа — Гэрийг бүхэлд нь бэхлэх уяанууд."},
	{ID: "shal", AssetPath: "models/shal.glb", DisplayName: "Шал",
		Description: "Шал — Гэрийн суурь модон хэсэг."},
}

// Default returns the built-in ger catalog in build order.
func Default() *Catalog {
	c, err := New(defaultParts)
	if err != nil {
		panic(err)
	}
	return c
}
