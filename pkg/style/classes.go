package style

const inputBase = "block border text-gray-900 placeholder:text-gray-400 transition focus:outline-none focus:ring-2 disabled:cursor-not-allowed disabled:opacity-50"

var inputVariants = map[Variant]string{
	VariantDefault:   "border-gray-300 bg-white focus:border-blue-500 focus:ring-blue-500/40",
	VariantOutline:   "border-2 border-gray-300 bg-transparent focus:border-blue-500 focus:ring-blue-500/40",
	VariantFilled:    "border-transparent bg-gray-100 focus:bg-white focus:border-blue-500 focus:ring-blue-500/40",
	VariantGhost:     "border-transparent bg-transparent hover:bg-gray-50 focus:ring-blue-500/40",
	VariantUnderline: "border-0 border-b-2 border-gray-300 bg-transparent focus:border-blue-500 focus:ring-0",
}

var inputSizes = map[Size]string{
	SizeXS: "h-7 px-2 text-xs",
	SizeSM: "h-8 px-2.5 text-sm",
	SizeMD: "h-10 px-3 text-sm",
	SizeLG: "h-12 px-4 text-base",
	SizeXL: "h-14 px-5 text-lg",
}

var radii = map[Radius]string{
	RadiusNone: "rounded-none",
	RadiusSM:   "rounded-sm",
	RadiusMD:   "rounded-md",
	RadiusLG:   "rounded-lg",
	RadiusFull: "rounded-full",
}

var inputStatus = map[Status]string{
	StatusError:   "border-red-500 text-red-900 focus:border-red-500 focus:ring-red-500/40",
	StatusSuccess: "border-green-500 focus:border-green-500 focus:ring-green-500/40",
}

const buttonBase = "inline-flex items-center justify-center gap-2 font-medium transition focus:outline-none focus:ring-2 focus:ring-offset-2 disabled:pointer-events-none disabled:opacity-50"

var buttonVariants = map[Variant]string{
	VariantDefault:   "bg-blue-600 text-white hover:bg-blue-700 focus:ring-blue-500",
	VariantOutline:   "border border-blue-600 text-blue-600 hover:bg-blue-50 focus:ring-blue-500",
	VariantFilled:    "bg-gray-900 text-white hover:bg-gray-800 focus:ring-gray-500",
	VariantGhost:     "text-blue-600 hover:bg-blue-50 focus:ring-blue-500",
	VariantUnderline: "text-blue-600 underline-offset-4 hover:underline focus:ring-blue-500",
}

var buttonSizes = map[Size]string{
	SizeXS: "h-7 px-2.5 text-xs",
	SizeSM: "h-8 px-3 text-sm",
	SizeMD: "h-10 px-4 text-sm",
	SizeLG: "h-12 px-6 text-base",
	SizeXL: "h-14 px-8 text-lg",
}

var labelStatus = map[Status]string{
	StatusDefault: "text-gray-900",
	StatusError:   "text-red-700",
	StatusSuccess: "text-green-700",
}

var messageStatus = map[Status]string{
	StatusDefault: "text-gray-500",
	StatusError:   "text-red-600",
	StatusSuccess: "text-green-600",
}

// InputClasses returns the class list for a text-like control.
func InputClasses(attrs Attributes, status Status) string {
	width := ""
	if attrs.FullWidth {
		width = "w-full"
	}
	radius := radii[attrs.Radius]
	if attrs.Variant == VariantUnderline {
		radius = radii[RadiusNone]
	}
	return Join(
		inputBase,
		inputVariants[attrs.Variant],
		inputSizes[attrs.Size],
		radius,
		inputStatus[status],
		width,
	)
}

// ButtonClasses returns the class list for a button.
func ButtonClasses(attrs Attributes) string {
	width := "w-auto"
	if attrs.FullWidth {
		width = "w-full"
	}
	return Join(
		buttonBase,
		buttonVariants[attrs.Variant],
		buttonSizes[attrs.Size],
		radii[attrs.Radius],
		width,
	)
}

// LabelClasses returns the class list for a field label.
func LabelClasses(status Status) string {
	return Join("text-sm font-medium", labelStatus[status])
}

// MessageClasses returns the class list for helper, error and success text.
func MessageClasses(status Status) string {
	return Join("text-sm", messageStatus[status])
}

// RadiusClass returns the rounding utility for r.
func RadiusClass(r Radius) string {
	return radii[r]
}
