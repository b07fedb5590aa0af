package domain

// Bundled fallback dataset, used whenever no catalog backend is configured or
// the initial fetch fails. Kept in the same order the remote would return:
// products by dateAdded descending, categories by name ascending.

func FallbackProducts() []Product {
	return []Product{
		{ID: "p-101", Name: "رواية أولاد حارتنا", Author: "نجيب محفوظ", Price: 180, Stock: 12, ImageURL: "/static/img/products/p-101.jpg", Category: "books", Subcategory: "novels", Description: "طبعة دار الشروق الكاملة.", Status: StatusAvailable, DateAdded: "2024-06-18"},
		{ID: "p-102", Name: "دفتر سلك A4 عدد 100 ورقة", Author: "سلوفان", Price: 45, Stock: 60, ImageURL: "/static/img/products/p-102.jpg", Category: "stationery", Subcategory: "notebooks", Description: "ورق أبيض مسطر عالي الجودة.", Status: StatusAvailable, DateAdded: "2024-06-15"},
		{ID: "p-103", Name: "قلم حبر جاف أزرق", Author: "روتو", Price: 7, Stock: 200, ImageURL: "/static/img/products/p-103.jpg", Category: "stationery", Subcategory: "pens", Status: StatusAvailable, DateAdded: "2024-06-12"},
		{ID: "p-104", Name: "ديوان الأعمال الكاملة", Author: "محمود درويش", Price: 220, DiscountPrice: 185, Stock: 8, ImageURL: "/static/img/products/p-104.jpg", Category: "books", Subcategory: "poetry", Description: "مجلد فاخر بغلاف مقوى.", Status: StatusAvailable, DateAdded: "2024-06-10"},
		{ID: "p-105", Name: "ألوان خشبية 24 لون", Author: "فايبر كاستل", Price: 150, Stock: 25, ImageURL: "/static/img/products/p-105.jpg", Category: "art", Subcategory: "coloring", Status: StatusAvailable, DateAdded: "2024-06-08"},
		{ID: "p-106", Name: "كتاب عزازيل", Author: "يوسف زيدان", Price: 160, Stock: 0, ImageURL: "/static/img/products/p-106.jpg", Category: "books", Subcategory: "novels", Description: "الرواية الحائزة على البوكر العربية.", Status: StatusUnavailable, DateAdded: "2024-06-05"},
		{ID: "p-107", Name: "كشكول رسم A3", Author: "كانسون", Price: 85, Stock: 18, ImageURL: "/static/img/products/p-107.jpg", Category: "art", Subcategory: "sketchbooks", Status: StatusAvailable, DateAdded: "2024-06-02"},
		{ID: "p-108", Name: "مقلمة قماش بسوستة", Author: "ميموري", Price: 55, Stock: 40, ImageURL: "/static/img/products/p-108.jpg", Category: "stationery", Subcategory: "cases", Status: StatusAvailable, DateAdded: "2024-05-28"},
		{ID: "p-109", Name: "قاموس المورد الحديث", Author: "منير البعلبكي", Price: 350, Stock: 5, ImageURL: "/static/img/products/p-109.jpg", Category: "books", Subcategory: "reference", Description: "قاموس إنجليزي عربي.", Status: StatusAvailable, DateAdded: "2024-05-24"},
		{ID: "p-110", Name: "آلة حاسبة علمية FX-991", Author: "كاسيو", Price: 620, Stock: 10, ImageURL: "/static/img/products/p-110.jpg", Category: "office", Subcategory: "calculators", Status: StatusAvailable, DateAdded: "2024-05-20"},
		{ID: "p-111", Name: "حامل كتب خشبي", Author: "وود آرت", Price: 120, Stock: 14, ImageURL: "/static/img/products/p-111.jpg", Category: "office", Subcategory: "accessories", Status: StatusAvailable, DateAdded: "2024-05-16"},
		{ID: "p-112", Name: "مجموعة أقلام تحديد فسفوري", Author: "ستابيلو", Price: 95, Stock: 33, ImageURL: "/static/img/products/p-112.jpg", Category: "stationery", Subcategory: "pens", Status: StatusAvailable, DateAdded: "2024-05-12"},
	}
}

func FallbackCategories() []Category {
	return []Category{
		{ID: "art", Name: "أدوات فنية", Icon: "🎨", Description: "ألوان وكراسات رسم وأدوات فنية", Subcategories: []Subcategory{
			{ID: "coloring", Name: "ألوان"},
			{ID: "sketchbooks", Name: "كراسات رسم"},
		}},
		{ID: "office", Name: "أدوات مكتبية", Icon: "🖇️", Description: "مستلزمات المكتب والدراسة", Subcategories: []Subcategory{
			{ID: "calculators", Name: "آلات حاسبة"},
			{ID: "accessories", Name: "إكسسوارات"},
		}},
		{ID: "stationery", Name: "قرطاسية", Icon: "✏️", Description: "أقلام ودفاتر ومستلزمات مدرسية", Subcategories: []Subcategory{
			{ID: "notebooks", Name: "دفاتر"},
			{ID: "pens", Name: "أقلام"},
			{ID: "cases", Name: "مقالم"},
		}},
		{ID: "books", Name: "كتب", Icon: "📚", Description: "روايات ودواوين ومراجع", Subcategories: []Subcategory{
			{ID: "novels", Name: "روايات"},
			{ID: "poetry", Name: "شعر"},
			{ID: "reference", Name: "مراجع"},
		}},
	}
}
