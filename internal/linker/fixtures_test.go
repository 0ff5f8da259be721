package linker_test

const targetURL = "https://wiki.example.org/display/ERC/CBM001+Report"

const thecbSource = `<p>Dataset overview</p>
<h2>Variables</h2>
<table><colgroup><col style="width: 120.0px;" /><col style="width: 200.0px;" /><col /></colgroup><tbody>
<tr><th>ERC Variable</th><th>Description</th><th>Item name</th></tr>
<tr><td>STU_ID</td><td>Student identifier</td><td>Student ID</td></tr>
<tr><td>ENRL_RATE</td><td>Rate</td><td>enrollment-rate</td></tr>
<tr><td>Graduation Rate</td><td>Computed</td><td>Zzz Unrelated</td></tr>
<tr><td>NOPE</td><td>Unknown</td><td>Qqq</td></tr>
</tbody></table>`

const thecbTarget = `<h1>Student ID</h1><p>text</p>
<h2>Enrollment Rate Trends</h2>
<h2>Graduation Rate</h2>
<h3>Other Stuff</h3>`

const sbecSource = `<table><tbody>
<tr><th>Variable</th><th>Name</th><th>Type</th></tr>
<tr><td>V1</td><td>Certification Area</td><td>char</td></tr>
<tr><td>V2</td><td>Test Date</td><td>date</td></tr>
<tr><td>V3</td></tr>
</tbody></table>`

const sbecTarget = `<h2>Certification Area</h2><h2>Test Date Window</h2>`

const teaSource = `<table style="width: 800px; border: 1px"><tbody>
<tr><th>UTD-ERC Variable</th><th>Type</th><th>Description</th></tr>
<tr><th>Fiscal Year</th><td>int</td><td>Year of record</td></tr>
<tr><th>District</th><td>char</td><td>District number</td></tr>
<tr><th>Zip Code</th><td>char</td><td>Postal code</td></tr>
</tbody></table>`

const teaTarget = `<h2>E0974 - Fiscal Year</h2><h2>E0212 - District ID</h2><h2>Campus</h2>`
