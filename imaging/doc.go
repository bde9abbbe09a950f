// Package imaging prepares raster pages for text recognition.
//
// [Enhance] upsamples an image until its shorter side reaches a pixel floor
// and then boosts contrast and sharpness. [Binarize] turns the enhanced
// image into a denoised black and white variant, which is what
// word-level engines such as Tesseract read best.
//
//	enhanced := imaging.Enhance(page, imaging.DefaultEnhanceOptions())
//	binary := imaging.Binarize(enhanced, imaging.DefaultBinarizeOptions())
//
// [Decode] reads uploaded images in every format the service accepts and
// [EncodePNG] serialises an image for engines that take encoded bytes.
package imaging
