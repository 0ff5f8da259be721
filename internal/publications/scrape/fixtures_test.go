package scrape_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const (
	austinBriefsURL   = "https://texaserc.utexas.edu/about-us/publications/policy-briefs/"
	dallasAreasURL    = "https://tsp.utdallas.edu/publications/research-areas/"
	dallasWorkURL     = "https://tsp.utdallas.edu/publications/working-papers/"
	houstonBriefsURL  = "https://uh.edu/education/research/institutes-centers/erc/project-policy-briefs/"
	houstonReportsURL = "https://uh.edu/education/research/institutes-centers/erc/reports-publications/"
)

const austinBriefsHTML = `<html><body>
<table id="tablepress-20">
<thead><tr><th>ERC Proj #</th><th>THECB #</th><th>Title</th><th>Project</th><th>Date</th></tr></thead>
<tbody>
<tr><td>125</td><td>9</td><td><a href="/wp-content/uploads/brief-125.pdf">COLLEGE READINESS IN TEXAS. by Jane Doe and John Roe.</a></td><td>College Readiness</td><td>05.01.24</td></tr>
<tr><td>126</td><td>77</td><td>Wage Outcomes of Ph.D. by Ann Lee</td><td>Wages</td><td>2023</td></tr>
<tr><td>only one cell</td></tr>
<tr><td>1</td><td>2</td><td></td><td>x</td><td>y</td></tr>
</tbody>
</table>
</body></html>`

const austinOtherHTML = `<html><body>
<table id="tablepress-21"><tbody>
<tr><td><a href="https://doi.org/10.1/x">Dual Credit Outcomes by Smith, A.</a></td><td>2021</td></tr>
</tbody></table>
</body></html>`

const dallasAreasHTML = `<html><body><main class="site-main">
<h2>Higher Education</h2>
<ul>
<li>Smith, John and Jane Doe. 2019. “Returns to College Majors.” NBER working paper 123. <a href="/papers/returns.pdf">PDF</a></li>
<li>Journal of Labor, 12(3)</li>
</ul>
<p>Lee, Ann. 2020. "Early Childhood Gains." Journal.</p>
<p><a href="#top">To the top</a></p>
<h2>K-12</h2>
<p>Kim. In Progress. "Charter Expansion"</p>
</main></body></html>`

const dallasWorkHTML = `<html><body><main class="site-main">
<nav><p>Garcia, Menu. 2020. "Navigation Link"</p></nav>
<p>Garcia, Maria. 2022. "Tuition Setting and Access." Working paper.</p>
<p>Patel. "Dual Credit Pathways" 2021</p>
<p>Brown, Lee, Kim. Report titled "Rural Access" 2018</p>
<p>   </p>
</main></body></html>`

const houstonBriefsHTML = `<html><body><section id="content-well">
<table>
<tr><th>Project</th><th>Policy Brief</th></tr>
<tr><td>UH010</td><td><a href="/education/briefs/uh010.pdf">Charter School Growth in Houston</a>. J.A.Smith,R.Jones and  K.Lee - Rice University, March 2022</td></tr>
<tr><td>UH015</td><td><a href="uh015.pdf">Top Ten Percent</a>. Someone - University of Houston, May 2023</td></tr>
<tr><td>UH020</td><td></td></tr>
</table>
</section></body></html>`

const houstonReportsHTML = `<html><body><section id="content-well">
<h2>Reports</h2>
<ul>
<li><a href="/erc/charter-2019-2020.pdf">Texas Charter Authorizer Report 2019-2020</a> Executive Summary
  <ul>
    <li><em>Appendix A</em> <a href="appendix-a.pdf">download</a></li>
    <li>Data tables data-tables.xlsx</li>
    <li><a href="third.pdf">Third</a></li>
  </ul>
</li>
</ul>
<h2>Publications</h2>
<p>Templeton, T., &amp; Horn, C. (2021). School Finance Equity in Texas.</p>
<ul><li>Feast or Famine: Inequity within the Texas School Finance System (2023)</li></ul>
<p>Standalone Working Title</p>
</section></body></html>`

func mustDoc(t *testing.T, html string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Selection
}
