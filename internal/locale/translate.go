package locale

// messages holds the UI strings per language. Lookups fall back to the key.
var messages = map[string]map[string]string{
	LanguageEnglish: {
		// 导航
		"home":      "Home",
		"projects":  "Projects",
		"resume":    "Resume",
		"portfolio": "Portfolio",
		"blog":      "Blog/Vlog",
		"contact":   "Contact",

		"heroTitle":       "Full Stack Developer",
		"heroSubtitle":    "Digital Innovation Specialist",
		"heroDescription": "Passionate about creating exceptional digital experiences through innovative web solutions and cutting-edge technology.",
		"viewProjects":    "View Projects",
		"downloadResume":  "Download Resume",

		"certifications": "Certifications",
		"myProjects":     "My Projects",
		"experience":     "Experience",
		"skills":         "Skills",
		"education":      "Education",
		"latestPosts":    "Latest Posts",
		"getInTouch":     "Get In Touch",
		"followMe":       "Follow Me",
		"allRights":      "All rights reserved",
		"noProjects":     "No projects yet.",
		"noPosts":        "No posts yet.",
		"backToHome":     "Back to home",
		"notFound":       "Not found",
		"loadFailed":     "Something went wrong while loading this page.",
		"videoPlayer":    "Video player",
		"retry":          "Try again",
		"technologies":   "Technologies",

		"liveDemo":           "Live Demo",
		"sourceCode":         "Source Code",
		"allProjects":        "All Projects",
		"technologyProjects": "Technology Projects",
		"trainingProjects":   "Training Projects",
		"otherProjects":      "Other Projects",

		"readMore": "Read More",
		"minutes":  "minutes",
		"readTime": "read time",

		// 后台
		"adminLogin":          "Admin Login",
		"dashboard":           "Dashboard",
		"username":            "Username",
		"password":            "Password",
		"signIn":              "Sign in",
		"signOut":             "Sign out",
		"invalidLogin":        "Invalid username or password",
		"tooManyAttempts":     "Too many login attempts, try again later",
		"addProject":          "Add Project",
		"editProject":         "Edit Project",
		"addPost":             "Add Post",
		"editPost":            "Edit Post",
		"save":                "Save",
		"update":              "Update",
		"cancel":              "Cancel",
		"edit":                "Edit",
		"delete":              "Delete",
		"confirmDelete":       "Are you sure you want to delete this item?",
		"titleEn":             "Title (English)",
		"titleAr":             "Title (Arabic)",
		"descriptionEn":       "Description (English)",
		"descriptionAr":       "Description (Arabic)",
		"excerptEn":           "Excerpt (English)",
		"excerptAr":           "Excerpt (Arabic)",
		"image":               "Image URL",
		"technologiesHint":    "Technologies (comma separated)",
		"liveUrl":             "Live URL",
		"githubUrl":           "GitHub URL",
		"category":            "Category",
		"date":                "Date",
		"totalProjects":       "Total Projects",
		"totalPosts":          "Total Posts",
		"blogCategories":      "Blog Categories",
		"avgReadTime":         "Avg. Read Time",
		"projectCreated":      "Project created",
		"projectUpdated":      "Project updated",
		"projectDeleted":      "Project deleted",
		"postCreated":         "Post created",
		"postUpdated":         "Post updated",
		"postDeleted":         "Post deleted",
		"saveFailed":          "Save failed",
		"deleteFailed":        "Delete failed",
		"backendMissing":      "Backend is not configured",
		"fieldRequired":       "This field is required",
		"fieldInvalid":        "Invalid value",
		"category.technology": "Technology",
		"category.training":   "Training",
		"category.other":      "Other",
	},
	LanguageArabic: {
		"home":      "الرئيسية",
		"projects":  "المشاريع",
		"resume":    "السيرة الذاتية",
		"portfolio": "معرض الأعمال",
		"blog":      "المدونة",
		"contact":   "التواصل",

		"heroTitle":       "مطور ويب متكامل",
		"heroSubtitle":    "مختص في الابتكار الرقمي",
		"heroDescription": "شغوف بإنشاء تجارب رقمية استثنائية من خلال حلول الويب المبتكرة والتكنولوجيا المتطورة.",
		"viewProjects":    "عرض المشاريع",
		"downloadResume":  "تحميل السيرة الذاتية",

		"certifications": "الشهادات",
		"myProjects":     "مشاريعي",
		"experience":     "الخبرة",
		"skills":         "المهارات",
		"education":      "التعليم",
		"latestPosts":    "أحدث المقالات",
		"getInTouch":     "تواصل معي",
		"followMe":       "تابعني",
		"allRights":      "جميع الحقوق محفوظة",
		"noProjects":     "لا توجد مشاريع بعد.",
		"noPosts":        "لا توجد مقالات بعد.",
		"backToHome":     "العودة إلى الرئيسية",
		"notFound":       "غير موجود",
		"loadFailed":     "حدث خطأ أثناء تحميل هذه الصفحة.",
		"videoPlayer":    "مشغل الفيديو",
		"retry":          "حاول مرة أخرى",
		"technologies":   "التقنيات",

		"liveDemo":           "عرض مباشر",
		"sourceCode":         "الكود المصدري",
		"allProjects":        "جميع المشاريع",
		"technologyProjects": "المشاريع التقنية",
		"trainingProjects":   "مشاريع التدريب",
		"otherProjects":      "مشاريع أخرى",

		"readMore": "اقرأ المزيد",
		"minutes":  "دقائق",
		"readTime": "وقت القراءة",

		"adminLogin":          "تسجيل دخول المشرف",
		"dashboard":           "لوحة التحكم",
		"username":            "اسم المستخدم",
		"password":            "كلمة المرور",
		"signIn":              "تسجيل الدخول",
		"signOut":             "تسجيل الخروج",
		"invalidLogin":        "اسم المستخدم أو كلمة المرور غير صحيحة",
		"tooManyAttempts":     "محاولات كثيرة، حاول لاحقاً",
		"addProject":          "إضافة مشروع",
		"editProject":         "تعديل المشروع",
		"addPost":             "إضافة مقال",
		"editPost":            "تعديل المقال",
		"save":                "حفظ",
		"update":              "تحديث",
		"cancel":              "إلغاء",
		"edit":                "تعديل",
		"delete":              "حذف",
		"confirmDelete":       "هل أنت متأكد من حذف هذا العنصر؟",
		"titleEn":             "العنوان (بالإنجليزية)",
		"titleAr":             "العنوان (بالعربية)",
		"descriptionEn":       "الوصف (بالإنجليزية)",
		"descriptionAr":       "الوصف (بالعربية)",
		"excerptEn":           "المقتطف (بالإنجليزية)",
		"excerptAr":           "المقتطف (بالعربية)",
		"image":               "رابط الصورة",
		"technologiesHint":    "التقنيات (مفصولة بفواصل)",
		"liveUrl":             "الرابط المباشر",
		"githubUrl":           "رابط GitHub",
		"category":            "الفئة",
		"date":                "التاريخ",
		"totalProjects":       "إجمالي المشاريع",
		"totalPosts":          "إجمالي المقالات",
		"blogCategories":      "فئات المدونة",
		"avgReadTime":         "متوسط وقت القراءة",
		"projectCreated":      "تم إنشاء المشروع",
		"projectUpdated":      "تم تحديث المشروع",
		"projectDeleted":      "تم حذف المشروع",
		"postCreated":         "تم إنشاء المقال",
		"postUpdated":         "تم تحديث المقال",
		"postDeleted":         "تم حذف المقال",
		"saveFailed":          "فشل الحفظ",
		"deleteFailed":        "فشل الحذف",
		"backendMissing":      "الخادم غير مهيأ",
		"fieldRequired":       "هذا الحقل مطلوب",
		"fieldInvalid":        "قيمة غير صالحة",
		"category.technology": "تقنية",
		"category.training":   "تدريب",
		"category.other":      "أخرى",
	},
}

// T translates key for lang. Unknown keys are returned as-is.
func T(lang, key string) string {
	table, ok := messages[NormalizeLanguage(lang)]
	if !ok {
		table = messages[LanguageEnglish]
	}
	if value, ok := table[key]; ok && value != "" {
		return value
	}
	return key
}
