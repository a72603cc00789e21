package slideview

import (
	"archive/zip"
	"bytes"
)

// makeZip builds an in-memory ZIP from part name to content.
func makeZip(parts map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

const nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
const nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
const nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

const fixtureContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
</Types>`

const fixtureRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

const fixturePresentation = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="` + nsP + `" xmlns:a="` + nsA + `" xmlns:r="` + nsR + `">
<p:sldIdLst>
<p:sldId id="256" r:id="rId2"/>
<p:sldId id="257" r:id="rId3"/>
<p:sldId id="258" r:id="rId4"/>
</p:sldIdLst>
<p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`

const fixturePresentationRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide2.xml"/>
<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide3.xml"/>
</Relationships>`

const fixtureTheme = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="` + nsA + `" name="Fixture">
<a:themeElements>
<a:clrScheme name="Fixture">
<a:dk1><a:sysClr val="windowText" lastClr="101010"/></a:dk1>
<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
<a:dk2><a:srgbClr val="1F497D"/></a:dk2>
<a:lt2><a:srgbClr val="EEECE1"/></a:lt2>
<a:accent1><a:srgbClr val="336699"/></a:accent1>
<a:accent2><a:srgbClr val="C0504D"/></a:accent2>
<a:accent3><a:srgbClr val="9BBB59"/></a:accent3>
<a:accent4><a:srgbClr val="8064A2"/></a:accent4>
<a:accent5><a:srgbClr val="4BACC6"/></a:accent5>
<a:accent6><a:srgbClr val="F79646"/></a:accent6>
<a:hlink><a:srgbClr val="0000FF"/></a:hlink>
<a:folHlink><a:srgbClr val="800080"/></a:folHlink>
</a:clrScheme>
<a:fontScheme name="Fixture">
<a:majorFont><a:latin typeface="Georgia"/></a:majorFont>
<a:minorFont><a:latin typeface="Verdana"/></a:minorFont>
</a:fontScheme>
</a:themeElements>
</a:theme>`

// fixtureSlide1 carries two title placeholders; the first one in document
// order supplies the slide title.
const fixtureSlide1 = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="` + nsP + `" xmlns:a="` + nsA + `" xmlns:r="` + nsR + `">
<p:cSld>
<p:spTree>
<p:sp>
<p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="ctrTitle"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="914400" y="914400"/><a:ext cx="7315200" cy="1371600"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/>
<a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="en-US" sz="4400" b="1"/><a:t>Quarterly Review</a:t></a:r></a:p>
</p:txBody>
</p:sp>
<p:sp>
<p:nvSpPr><p:cNvPr id="3" name="Title 2"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="914400" y="2743200"/><a:ext cx="7315200" cy="914400"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/>
<a:p><a:r><a:rPr lang="en-US" sz="2000"/><a:t>Second Title</a:t></a:r></a:p>
</p:txBody>
</p:sp>
<p:sp>
<p:nvSpPr><p:cNvPr id="4" name="Box 3"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
<p:spPr>
<a:xfrm><a:off x="457200" y="4114800"/><a:ext cx="2743200" cy="1371600"/></a:xfrm>
<a:prstGeom prst="roundRect"><a:avLst><a:gd name="adj" fmla="val 25000"/></a:avLst></a:prstGeom>
<a:solidFill><a:schemeClr val="accent1"><a:tint val="40000"/></a:schemeClr></a:solidFill>
<a:ln w="25400"><a:solidFill><a:srgbClr val="1F497D"/></a:solidFill></a:ln>
</p:spPr>
<p:txBody><a:bodyPr/>
<a:p><a:r><a:rPr lang="en-US" sz="1800"/><a:t>Revenue grew 14% year over year</a:t></a:r></a:p>
</p:txBody>
</p:sp>
</p:spTree>
</p:cSld>
</p:sld>`

const fixtureSlide2 = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="` + nsP + `" xmlns:a="` + nsA + `" xmlns:r="` + nsR + `">
<p:cSld>
<p:spTree>
<p:graphicFrame>
<p:nvGraphicFramePr><p:cNvPr id="5" name="Table 4"/></p:nvGraphicFramePr>
<p:xfrm><a:off x="914400" y="914400"/><a:ext cx="7315200" cy="1828800"/></p:xfrm>
<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
<a:tbl>
<a:tblPr firstRow="1" bandRow="1"/>
<a:tblGrid><a:gridCol w="2438400"/><a:gridCol w="2438400"/><a:gridCol w="2438400"/></a:tblGrid>
<a:tr h="914400">
<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>Region</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>
<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>Q1</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>
<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>Q2</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>
</a:tr>
<a:tr h="914400">
<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>West</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>
<a:tc gridSpan="2"><a:txBody><a:bodyPr/><a:p><a:r><a:t>412</a:t></a:r></a:p></a:txBody><a:tcPr><a:solidFill><a:srgbClr val="DDEEFF"/></a:solidFill></a:tcPr></a:tc>
<a:tc hMerge="1"><a:txBody><a:bodyPr/><a:p/></a:txBody><a:tcPr/></a:tc>
</a:tr>
</a:tbl>
</a:graphicData></a:graphic>
</p:graphicFrame>
</p:spTree>
</p:cSld>
</p:sld>`

// fixtureSlide3 references an image part that is absent from the package.
const fixtureSlide3 = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="` + nsP + `" xmlns:a="` + nsA + `" xmlns:r="` + nsR + `">
<p:cSld>
<p:spTree>
<p:pic>
<p:nvPicPr><p:cNvPr id="6" name="Picture 5"/></p:nvPicPr>
<p:blipFill><a:blip r:embed="rId2"/><a:srcRect l="10000" r="10000"/></p:blipFill>
<p:spPr><a:xfrm><a:off x="1828800" y="1828800"/><a:ext cx="3657600" cy="2743200"/></a:xfrm></p:spPr>
</p:pic>
<p:grpSp>
<p:nvGrpSpPr><p:cNvPr id="7" name="Group 6"/></p:nvGrpSpPr>
<p:grpSpPr>
<a:xfrm>
<a:off x="457200" y="457200"/><a:ext cx="1828800" cy="914400"/>
<a:chOff x="0" y="0"/><a:chExt cx="914400" cy="457200"/>
</a:xfrm>
</p:grpSpPr>
<p:sp>
<p:nvSpPr><p:cNvPr id="8" name="Oval 7"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
<p:spPr>
<a:xfrm><a:off x="0" y="0"/><a:ext cx="457200" cy="457200"/></a:xfrm>
<a:prstGeom prst="ellipse"/>
<a:solidFill><a:srgbClr val="C0504D"/></a:solidFill>
</p:spPr>
</p:sp>
</p:grpSp>
</p:spTree>
</p:cSld>
</p:sld>`

const fixtureSlide3Rels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/missing.png"/>
</Relationships>`

const fixtureCoreProps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Fixture Deck</dc:title>
<dc:creator>Quality Engineering</dc:creator>
</cp:coreProperties>`

// fixtureDeckParts is a complete three-slide package.
func fixtureDeckParts() map[string]string {
	return map[string]string{
		"[Content_Types].xml":              fixtureContentTypes,
		"_rels/.rels":                      fixtureRootRels,
		"ppt/presentation.xml":             fixturePresentation,
		"ppt/_rels/presentation.xml.rels":  fixturePresentationRels,
		"ppt/theme/theme1.xml":             fixtureTheme,
		"ppt/slides/slide1.xml":            fixtureSlide1,
		"ppt/slides/slide2.xml":            fixtureSlide2,
		"ppt/slides/slide3.xml":            fixtureSlide3,
		"ppt/slides/_rels/slide3.xml.rels": fixtureSlide3Rels,
		"docProps/core.xml":                fixtureCoreProps,
	}
}

func openFixtureDeck() (*Presentation, error) {
	return OpenBytes(makeZip(fixtureDeckParts()))
}

// openDeckWithSlide1 opens the fixture deck with slide 1's markup replaced.
func openDeckWithSlide1(slideXML string) (*Presentation, error) {
	parts := fixtureDeckParts()
	parts["ppt/slides/slide1.xml"] = slideXML
	return OpenBytes(makeZip(parts))
}
