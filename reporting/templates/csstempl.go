package templates

// CSStempl is our css template sheet
var CSStempl = []byte(`body {
  margin: 0;
  font-family: 'Lucida Sans', Arial, sans-serif;
  color: #222;
}

ul {
  list-style-type: none;
  margin: 0;
  padding: 0;
  overflow: hidden;
  background-color: #1d2b36;
}

li {
  float: left;
  border-right: 1px solid #4a5a66;
}

li:last-child {
  border-right: none;
}

li a {
  display: block;
  color: white;
  padding: 14px 16px;
  text-decoration: none;
}

li a:hover {
  background-color: #3b7ea1;
}

.info {
  margin: 10px 0px;
  padding: 12px;
  color: white;
  background-color: #34495e;
}

.container {
  overflow-x: auto;
  white-space: nowrap;
}

table {
  border-collapse: collapse;
  width: 100%;
  font-size: 14px;
}

th {
  background-color: #1d2b36;
  color: white;
}

th, td {
  text-align: left;
  padding: 6px 8px;
}

tr:nth-child(even) {
  background-color: #eef2f5;
}

.highlight {
  color: #c0392b;
  font-weight: bold;
}
`)
